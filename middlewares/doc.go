// Package middlewares provides net/http middleware for HTMX applications.
// Every middleware has the func(http.Handler) http.Handler shape and plugs
// straight into chi or any other router.
//
// # HTMX
//
// HTMX parses the HTMX request headers into the request context and adds
// "Vary: HX-Request" so caches keep fragments and full pages apart:
//
//	r := chi.NewRouter()
//	r.Use(middlewares.HTMX(
//	    middlewares.WithHTMXLogger(log),
//	    middlewares.WithStatusNormalization(),
//	))
//
// Handlers read the parsed values with htmx.RequestHeadersFromContext. Use
// HTMXExtractor with the logger package to add them to every log record:
//
//	log := logger.New(logger.WithExtractors(middlewares.HTMXExtractor()))
//
// # Triggers
//
// Triggers lets code deep in the call stack declare client events without
// access to the response writer. Events are collected per request and written
// once, right before the response headers are sent:
//
//	r.Use(middlewares.Triggers(middlewares.WithTriggersLogger(log)))
//
//	func (s *Service) Save(ctx context.Context, c Contact) error {
//	    // ...
//	    middlewares.AddTrigger(ctx, "contacts-updated", nil)
//	    return nil
//	}
//
// Triggers added this way are merged with any trigger header the handler set
// itself through htmx.Respond.
//
// # Recover and RequestID
//
// Recover turns panics into a 500 response. HTMX requests additionally get a
// "serverError" event with "HX-Reswap: none" so the page can show a message
// instead of swapping an error body. RequestID tags every request with an ID
// that RequestIDExtractor adds to log records.
//
// # CORS
//
// CORS handles cross-origin requests. Cross-origin HTMX clients need the HTMX
// request headers allowed and the response headers exposed:
//
//	r.Use(middlewares.CORS(
//	    middlewares.WithAllowOrigins("https://app.example.com"),
//	    middlewares.WithHTMXHeaders(),
//	    middlewares.WithExposedHTMXHeaders(),
//	))
package middlewares
