// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package server

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"slices"
	"strings"
	"sync"

	"github.com/gorilla/mux"
)

var errAlreadyReserved = errors.New("route is either already aliased or already maps to a handle")

// Wrapper decorates the root handler, e.g. with authentication.
type Wrapper interface {
	WrapHandler(h http.Handler) http.Handler
}

type router struct {
	lock   sync.RWMutex
	router *mux.Router

	// base url -> endpoint -> handler
	routes map[string]map[string]http.Handler
}

func newRouter() *router {
	return &router{
		router: mux.NewRouter(),
		routes: make(map[string]map[string]http.Handler),
	}
}

func (r *router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	r.router.ServeHTTP(w, req)
}

func (r *router) AddRouter(base, endpoint string, handler http.Handler) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	endpoints := r.routes[base]
	if _, exists := endpoints[endpoint]; exists {
		return fmt.Errorf("%w: %s%s", errAlreadyReserved, base, endpoint)
	}
	if endpoints == nil {
		endpoints = make(map[string]http.Handler)
		r.routes[base] = endpoints
	}
	endpoints[endpoint] = handler
	r.router.Handle(base+endpoint, handler)
	return nil
}

// filterInvalidHosts rejects requests whose Host header is not in
// [allowed]. A "*" entry allows every host.
func filterInvalidHosts(handler http.Handler, allowed []string) http.Handler {
	hosts := make([]string, len(allowed))
	for i, h := range allowed {
		hosts[i] = strings.ToLower(h)
	}
	wildcard := slices.Contains(hosts, "*")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if wildcard {
			handler.ServeHTTP(w, r)
			return
		}
		host, _, err := net.SplitHostPort(r.Host)
		if err != nil {
			host = r.Host
		}
		// Addresses are always allowed; only names can be rebound.
		if net.ParseIP(host) != nil || slices.Contains(hosts, strings.ToLower(host)) {
			handler.ServeHTTP(w, r)
			return
		}
		http.Error(w, "invalid host specified", http.StatusForbidden)
	})
}
