/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"net/http"

	"github.com/Seednode/cartas/cards"
	"github.com/julienschmidt/httprouter"
)

func getFavicon(cfg *Config) string {
	return `<link rel="icon" type="image/png" href="` + cfg.prefix + `/favicon.png">
	<meta name="theme-color" content="#1d1d2b">`
}

func serveFavicon(cfg *Config, store *cards.Store, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		data, err := store.Icon()
		if err != nil {
			http.NotFound(w, r)
			return
		}

		writeAsset(cfg, w, "favicon.png", data, errs)
	}
}
