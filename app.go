/*
 *    Copyright 2025 Jeff Galyan
 *
 *    Licensed under the Apache License, Version 2.0 (the "License");
 *    you may not use this file except in compliance with the License.
 *    You may obtain a copy of the License at
 *
 *        http://www.apache.org/licenses/LICENSE-2.0
 *
 *    Unless required by applicable law or agreed to in writing, software
 *    distributed under the License is distributed on an "AS IS" BASIS,
 *    WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *    See the License for the specific language governing permissions and
 *    limitations under the License.
 */

package quokka

import (
	"crypto/tls"
	"log/slog"
	"net/http"
	"sync/atomic"

	"github.com/jrgalyan/quokka/config"
)

// App is the top-level composition: the registration surface applications
// build against, plus the transport loop that drives it. It wraps a Router
// the same way the rest of this pack's frameworks separate "what routes
// exist" from "what process serves them".
type App struct {
	router *Router
	logger *slog.Logger
	frozen atomic.Bool
}

// New creates an App ready for route registration.
func New() *App {
	return &App{router: NewRouter(), logger: slog.Default()}
}

func (a *App) checkMutable() {
	if a.frozen.Load() {
		panic("quokka: cannot register routes or middleware after Listen")
	}
}

// Freeze marks the App as no longer accepting route or middleware
// registration. Listen calls this before it starts serving; it is exported
// so a caller driving its own net.Listener (instead of Listen) can opt
// into the same guarantee.
func (a *App) Freeze() { a.frozen.Store(true) }

// Use adds global middleware, applied to every route registered or mounted
// on this App after the call. Routes registered before the call are not
// wrapped by it, and a request that matches no route does not pass through
// it.
func (a *App) Use(mw ...Middleware) {
	a.checkMutable()
	a.router.Use(mw...)
}

func (a *App) GET(path string, h Handler, mw ...Middleware) {
	a.checkMutable()
	a.router.GET(path, h, mw...)
}

func (a *App) POST(path string, h Handler, mw ...Middleware) {
	a.checkMutable()
	a.router.POST(path, h, mw...)
}

func (a *App) PUT(path string, h Handler, mw ...Middleware) {
	a.checkMutable()
	a.router.PUT(path, h, mw...)
}

func (a *App) DELETE(path string, h Handler, mw ...Middleware) {
	a.checkMutable()
	a.router.DELETE(path, h, mw...)
}

func (a *App) PATCH(path string, h Handler, mw ...Middleware) {
	a.checkMutable()
	a.router.PATCH(path, h, mw...)
}

func (a *App) OPTIONS(path string, h Handler, mw ...Middleware) {
	a.checkMutable()
	a.router.OPTIONS(path, h, mw...)
}

func (a *App) HEAD(path string, h Handler, mw ...Middleware) {
	a.checkMutable()
	a.router.HEAD(path, h, mw...)
}

// Mount flattens sub onto the App under prefix, scoped to mw.
func (a *App) Mount(prefix string, sub *SubRouter, mw ...Middleware) {
	a.checkMutable()
	sub.flatten(a.router, prefix, mw)
}

// ServeHTTP implements http.Handler: it builds a Request from r, dispatches
// it through the route table, and performs the single write of whatever
// Response (or projected Error) results.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	req := newRequest(r, nil)
	resp, err := a.router.dispatch(req)
	if err != nil {
		qerr, ok := AsError(err)
		if !ok {
			qerr = NewInternalServerError(err)
		}
		if qerr.Status() >= 500 {
			a.logger.Error("request failed", slog.String("path", req.path), slog.Any("err", err))
		}
		errorResponse(qerr).write(w)
		return
	}
	if resp == nil {
		resp = NoContent()
	}
	resp.write(w)
}

// Listen freezes route/middleware registration and starts serving on addr.
// Further calls to Use/GET/POST/.../Mount panic, matching spec's "routes
// and middleware are frozen once the app starts listening" invariant.
// Timeouts fall back to config.Default()'s fallbacks; use ListenConfigFile
// to drive the same boot path from an operator-supplied YAML file,
// including TLS.
func (a *App) Listen(addr string) error {
	cfg := config.Default()
	cfg.Addr = addr
	return a.listen(cfg)
}

// ListenConfigFile freezes registration and starts serving using the
// ServerConfig loaded from the YAML file at path (config.Load), so an
// operator can drive addr, timeouts, and TLS certificate/key files without
// recompiling the application. The file's rate_limit and log sections are
// parsed into config.ServerConfig but not applied here.
func (a *App) ListenConfigFile(path string) error {
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	return a.listen(cfg)
}

func (a *App) listen(cfg config.ServerConfig) error {
	a.Freeze()
	srvCfg := ServerConfig{
		Addr:              cfg.Addr,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
	if cfg.TLS.CertFile != "" && cfg.TLS.KeyFile != "" {
		cert, err := tls.LoadX509KeyPair(cfg.TLS.CertFile, cfg.TLS.KeyFile)
		if err != nil {
			return err
		}
		srvCfg.TLSConfig = &tls.Config{Certificates: []tls.Certificate{cert}}
	}
	srv := NewServer(srvCfg, a, a.logger)
	return srv.Start()
}
