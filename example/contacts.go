package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"sync"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/dmitrymomot/hx/middlewares"
	"github.com/dmitrymomot/hx/pkg/htmx"
	"github.com/dmitrymomot/hx/pkg/hxview"
)

type contact struct {
	ID    uuid.UUID
	Name  string
	Email string
}

type contactsApp struct {
	log      *slog.Logger
	client   hxview.ClientConfig
	script   hxview.ScriptConfig
	contacts map[uuid.UUID]contact
	collator *collate.Collator
	polls    int
	mu       sync.Mutex
}

func newContactsApp(log *slog.Logger, client hxview.ClientConfig, script hxview.ScriptConfig) *contactsApp {
	return &contactsApp{
		log:      log,
		client:   client,
		script:   script,
		contacts: make(map[uuid.UUID]contact),
		collator: collate.New(language.Und, collate.IgnoreCase, collate.Loose),
	}
}

func (a *contactsApp) Routes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(antiforgery)
		r.Get("/", a.index)
		r.Get("/contacts", a.list)
		r.Post("/contacts", a.create)
		r.Delete("/contacts/{id}", a.delete)
		r.Get("/contacts/count", a.count)
	})
}

func (a *contactsApp) index(w http.ResponseWriter, r *http.Request) {
	tokens := &hxview.AntiforgeryTokens{
		FormFieldName: csrfField,
		HeaderName:    csrfHeader,
		RequestToken:  csrfToken(r.Context()),
	}
	a.render(w, r, http.StatusOK, page(a.client, tokens, a.script, contactList(a.sorted())))
}

func (a *contactsApp) list(w http.ResponseWriter, r *http.Request) {
	a.render(w, r, http.StatusOK, contactList(a.sorted()))
}

func (a *contactsApp) create(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.FormValue("name"))
	email := strings.TrimSpace(r.FormValue("email"))
	if name == "" || !strings.Contains(email, "@") {
		err := htmx.Respond(w, func(h *htmx.ResponseHeaders) {
			h.WithTriggerDetail("showMessage", map[string]string{"level": "error", "message": "Name and a valid email are required"}).
				Reswap(htmx.SwapNone)
		})
		a.logError(r.Context(), err)
		w.WriteHeader(http.StatusUnprocessableEntity)
		return
	}

	c := contact{ID: uuid.New(), Name: name, Email: email}
	a.mu.Lock()
	a.contacts[c.ID] = c
	a.mu.Unlock()

	// Declared through the context so the store-side code does not need the writer.
	middlewares.AddTrigger(r.Context(), "contacts-updated", nil)
	middlewares.AddTriggerAt(r.Context(), htmx.TriggerAfterSettle, "highlight", map[string]string{"id": c.ID.String()})

	err := htmx.Respond(w, func(h *htmx.ResponseHeaders) {
		h.WithTriggerDetail("showMessage", map[string]string{"level": "info", "message": "Saved " + c.Name}).
			PushURL("/contacts")
	})
	a.logError(r.Context(), err)

	a.render(w, r, http.StatusCreated, contactList(a.sorted()))
}

func (a *contactsApp) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid contact id", http.StatusBadRequest)
		return
	}

	a.mu.Lock()
	_, ok := a.contacts[id]
	delete(a.contacts, id)
	a.mu.Unlock()

	if !ok {
		http.Error(w, "contact not found", http.StatusNotFound)
		return
	}

	middlewares.AddTrigger(r.Context(), "contacts-updated", nil)
	if !htmx.IsHTMX(r) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// count is polled by the page every few seconds and stops the poll once the
// list has been viewed often enough.
func (a *contactsApp) count(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	a.polls++
	polls, total := a.polls, len(a.contacts)
	a.mu.Unlock()

	if polls > 100 {
		htmx.StopPolling(w)
		return
	}
	_, _ = fmt.Fprintf(w, "%d contacts", total)
}

func (a *contactsApp) sorted() []contact {
	a.mu.Lock()
	defer a.mu.Unlock()

	list := make([]contact, 0, len(a.contacts))
	for _, c := range a.contacts {
		list = append(list, c)
	}
	slices.SortFunc(list, func(x, y contact) int {
		return a.collator.CompareString(x.Name, y.Name)
	})
	return list
}

func (a *contactsApp) render(w http.ResponseWriter, r *http.Request, status int, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := c.Render(r.Context(), w); err != nil {
		a.log.ErrorContext(r.Context(), "render failed", slog.String("error", err.Error()))
	}
}

func (a *contactsApp) logError(ctx context.Context, err error) {
	if err != nil {
		a.log.ErrorContext(ctx, "failed to set htmx headers", slog.String("error", err.Error()))
	}
}

func page(client hxview.ClientConfig, tokens *hxview.AntiforgeryTokens, script hxview.ScriptConfig, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<!doctype html><html><head><title>Contacts</title>`); err != nil {
			return err
		}
		if err := hxview.ConfigMeta(client, tokens).Render(ctx, w); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `<script src="https://unpkg.com/htmx.org@2.0.4" defer></script>`); err != nil {
			return err
		}
		if err := hxview.AntiforgeryScriptTag(script).Render(ctx, w); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `</head><body hx-boost="true">`+
			`<form hx-post="/contacts" hx-target="#contacts">`+
			`<input name="name" placeholder="Name"><input name="email" placeholder="Email">`+
			`<button>Add</button></form>`+
			`<p hx-get="/contacts/count" hx-trigger="every 5s"></p>`); err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</body></html>`)
		return err
	})
}

func contactList(contacts []contact) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<ul id="contacts" hx-get="/contacts" hx-trigger="contacts-updated from:body">`); err != nil {
			return err
		}
		for _, c := range contacts {
			attrs := hxview.HeadersAttrs(templ.Attributes{
				"hx-delete":  "/contacts/" + c.ID.String(),
				"hx-confirm": "Delete " + c.Name + "?",
			}, map[string]string{"X-Contact-Email": c.Email})

			if _, err := io.WriteString(w, `<li>`+templ.EscapeString(c.Name)+` &lt;`+templ.EscapeString(c.Email)+`&gt; <button`); err != nil {
				return err
			}
			if err := templ.RenderAttributes(ctx, w, attrs); err != nil {
				return err
			}
			if _, err := io.WriteString(w, `>Delete</button></li>`); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</ul>`)
		return err
	})
}
