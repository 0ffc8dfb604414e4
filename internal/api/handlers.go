package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrymomot/mentionkit/pkg/directory"
	"github.com/dmitrymomot/mentionkit/pkg/logger"
	"github.com/dmitrymomot/mentionkit/pkg/mention"
	"github.com/dmitrymomot/mentionkit/pkg/tenant"
)

func (a *API) suggest(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()
	tenantID := tenant.MustIDFromContext(ctx)

	found, err := a.store.Search(ctx, tenantID, r.URL.Query().Get("q"), a.cfg.suggestLimit)
	if err != nil {
		if errors.Is(err, directory.ErrUnknownTenant) {
			return ErrTenantUnknown
		}
		return err
	}
	return writeJSON(w, http.StatusOK, mentionItems(found))
}

// resolve validates the mentions of page_context against the tenant and
// summarizes them with the directory's labels. Client labels never reach the
// summary.
func (a *API) resolve(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()
	tenantID := tenant.MustIDFromContext(ctx)

	pageContext, err := a.decodePageContext(w, r)
	if err != nil {
		return err
	}

	mentions, err := mention.ParseAndValidate(ctx, pageContext, directory.NewValidator(a.store, tenantID))
	if err != nil {
		return err
	}
	entities, err := directory.Resolve(ctx, a.store, tenantID, mentions)
	if err != nil {
		return err
	}

	resp := ResolveResponse{TenantID: tenantID, Resolved: mentionItems(entities)}
	if summary, ok := mention.Summarize(directory.ToResult(entities), a.cfg.summary...); ok {
		resp.PromptSafeSummary = &summary
	}

	a.log.DebugContext(ctx, "mentions resolved",
		logger.MentionCount(mentions.Len()),
		logger.MentionTypes(mentions.Types()),
	)
	return writeJSON(w, http.StatusOK, resp)
}

// decodePageContext reads {"page_context": ...}. A missing or null
// page_context yields nil, which parses to an empty result.
func (a *API) decodePageContext(w http.ResponseWriter, r *http.Request) (any, error) {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, a.cfg.maxBodyBytes))
	dec.UseNumber()

	var body struct {
		PageContext any `json:"page_context"`
	}
	if err := dec.Decode(&body); err != nil {
		var maxBytes *http.MaxBytesError
		if errors.As(err, &maxBytes) {
			return nil, err
		}
		return nil, errors.Join(ErrMalformedBody, err)
	}
	if dec.More() {
		return nil, ErrMalformedBody
	}
	return body.PageContext, nil
}
