/*
Copyright © 2025 Seednode <seednode@seedno.de>
*/

package main

import (
	"embed"
	"net/http"
	"path"
	"strconv"
	"strings"

	"github.com/Seednode/cartas/cards"
	"github.com/Seednode/cartas/game"
	"github.com/julienschmidt/httprouter"
)

//go:embed assets/*
var assets embed.FS

func serveHomePage(cfg *Config, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		securityHeaders(cfg, w)

		_, err := w.Write([]byte(newPage(cfg, "cartas", "Click anywhere to start a new game.", "/cartas")))
		if err != nil {
			errs <- err

			return
		}
	}
}

func serveHealthCheck(cfg *Config, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		securityHeaders(cfg, w)

		_, err := w.Write([]byte("Ok\n"))
		if err != nil {
			errs <- err

			return
		}
	}
}

func writeAsset(cfg *Config, w http.ResponseWriter, name string, data []byte, errs chan<- error) {
	cacheHeaders(w)
	w.Header().Set("Content-Type", contentType(name))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	securityHeaders(cfg, w)

	_, err := w.Write(data)
	if err != nil {
		errs <- err
	}
}

// serveAssets answers /assets/cartas/*file from the embedded client files,
// the generated card art and the synthesized theme.
func serveAssets(cfg *Config, store *cards.Store, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		fname := strings.TrimPrefix(path.Clean(p.ByName("file")), "/")

		var (
			data []byte
			err  error
		)

		switch {
		case fname == "theme.wav":
			data, err = encodeTheme()
		case fname == "guide.png":
			data, err = store.Guide()
		case path.Dir(fname) == game.AssetDir:
			data, err = store.Face(game.Card(path.Base(fname)))
		default:
			data, err = assets.ReadFile(path.Join("assets", "cartas", fname))
		}

		if err != nil {
			http.NotFound(w, r)
			return
		}

		writeAsset(cfg, w, fname, data, errs)
	}
}

func serveRobots(cfg *Config, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		data := `User-agent: *
Disallow: /cartas/`

		cacheHeaders(w)
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("Content-Length", strconv.Itoa(len(data)))
		securityHeaders(cfg, w)

		_, err := w.Write([]byte(data))
		if err != nil {
			errs <- err

			return
		}
	}
}
