package routes

// Routes package wires all HTTP routing for the postcode locator service.
//
// Layout:
// - api.go: API routes (/v1/*)
// - web.go: Web routes (/, /docs, /status)
// - routes.go: package doc
//
// Usage:
// routes.SetupAllRoutes(router, lookupController, adminController)
