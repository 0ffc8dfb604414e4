// Package mention turns untrusted mention references taken from a client
// payload into normalized, deduplicated, tenant-validated references and
// renders a summary of them that is safe to embed in an LLM prompt.
//
// A mention is a {type, id, label} tuple the client attaches to its page
// context when the user picks an entity ("@Dwight Schrute"). The type is
// free-form client text, the id is the only value that may ever identify the
// entity and the label is display text that may be stale or hostile.
//
// # Pipeline
//
//	payload ──Parse──▶ Result ──Validator──▶ authoritative labels ──Summarize──▶ prompt fragment
//
//  1. Parse reads payload["mentions"], normalizes each type through the
//     Normalizer, checks the identifier shape with an IDParser (UUID by
//     default), applies the optional allow-list and drops duplicates.
//  2. A Validator supplied by the host application confirms that each
//     identifier exists in the caller's tenant. ParseAndValidate runs both
//     steps and returns validator errors untouched.
//  3. The caller looks entities up again server-side and builds a Result from
//     the authoritative labels with NewResult.
//  4. Summarize renders types, labels and counts, never identifiers.
//
// # Usage
//
//	import "github.com/dmitrymomot/mentionkit/pkg/mention"
//
//	mentions, err := mention.ParseAndValidate(ctx, payload, validator,
//		mention.WithAliases(mention.Aliases{"deal": "opportunity"}),
//		mention.WithAllowedTypes("contact", "meeting", "opportunity"),
//	)
//	if err != nil {
//		// errors.Is(err, mention.ErrParse) for malformed identifiers,
//		// validator errors otherwise
//	}
//
//	contact, ok, err := mentions.EnsureAtMostOne("person")
//
//	if summary, ok := mention.Summarize(mentions); ok {
//		prompt += summary
//	}
//
// # Error Handling
//
// Structure is forgiving, identifiers are not:
//
//   - a payload without a mentions list, non-object entries, empty or
//     non-allowed types and duplicates are skipped silently;
//   - a missing, blank or malformed id on an accepted entry aborts Parse with
//     a *ParseError wrapping ErrParse. The error never contains the raw value;
//   - EnsureAtMostOne returns ErrTooManyMentions when a type is ambiguous.
//
// The package never logs and keeps no state between calls; every function is
// safe to call concurrently.
package mention
