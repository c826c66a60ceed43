// Package quokka provides a minimal, production‑ready HTTP framework built
// on top of net/http.
//
// It focuses on:
//   - Express‑style routing with path parameters, matched in strict
//     registration order
//   - A composable, value‑returning middleware chain: each Middleware wraps
//     a Next continuation and can inspect, transform, or discard the
//     Response (or error) it produces
//   - Type‑safe request extraction (see the extract subpackage) backed by
//     struct‑tag validation
//   - Structured logging, panic recovery, timeouts, and graceful shutdown
//
// Getting started:
//
//	app := quokka.New()
//	app.Use(middleware.Recover(nil), middleware.Logger(middleware.LoggerConfig{}))
//	app.GET("/hello/:name", func(req *quokka.Request) (*quokka.Response, error) {
//		name, _ := req.Param("name")
//		return quokka.JSON(http.StatusOK, map[string]any{"hello": name})
//	})
//	log.Fatal(app.Listen(":8080"))
//
// The package is transport‑agnostic beyond net/http and container‑friendly;
// import it and wire it into your service.
package quokka
