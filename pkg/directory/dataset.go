package directory

import "github.com/google/uuid"

// DemoTenant is the tenant served by the demo dataset.
const DemoTenant = "demo"

// DemoEntities returns the small deterministic dataset used by the demo API.
func DemoEntities() []Entity {
	return []Entity{
		{TenantID: DemoTenant, Type: "contact", ID: uuid.MustParse("4c0a9e7a-2f40-4c64-9b7a-1f447f1b7ef8"), Label: "Dwight Schrute"},
		{TenantID: DemoTenant, Type: "contact", ID: uuid.MustParse("11111111-1111-4111-8111-111111111111"), Label: "Jim Halpert"},
		{TenantID: DemoTenant, Type: "meeting", ID: uuid.MustParse("22222222-2222-4222-8222-222222222222"), Label: "Conference Room All Hands"},
		{TenantID: DemoTenant, Type: "assignment", ID: uuid.MustParse("33333333-3333-4333-8333-333333333333"), Label: "Follow up with David"},
	}
}

// DemoDataset returns a MemoryStore holding DemoEntities.
func DemoDataset() *MemoryStore {
	s, err := NewMemoryStore(DemoEntities()...)
	if err != nil {
		panic(err)
	}
	return s
}
