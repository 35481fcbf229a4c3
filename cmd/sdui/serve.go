package main

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/sduikit/sdui"
)

// doServe runs a small development server: it serves the pages
// directory the same way a production content service would and accepts
// form submissions, so a page's submitButton can point at
// http://<addr>/submit.
func doServe(dir, addr string) error {
	src := sdui.NewFilesystemSource(dir)

	r := chi.NewRouter()
	r.Use(middleware.Logger)

	r.Get("/pages/{name}", func(w http.ResponseWriter, req *http.Request) {
		name := chi.URLParam(req, "name")
		data, err := src.Fetch(name)
		if err != nil {
			if sdui.IsNotFound(err) {
				http.Error(w, "no such page", http.StatusNotFound)
			} else {
				http.Error(w, err.Error(), http.StatusInternalServerError)
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write(data)
	})

	r.Post("/submit", handleSubmit)

	fmt.Printf("serving pages from %q on http://%v\n", dir, addr)
	return http.ListenAndServe(addr, r)
}

func handleSubmit(w http.ResponseWriter, req *http.Request) {
	err := req.ParseMultipartForm(32 << 20)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	fmt.Println("received submission:")
	for key, vals := range req.MultipartForm.Value {
		for _, v := range vals {
			fmt.Printf("  %v = %q\n", key, v)
		}
	}
	for key, files := range req.MultipartForm.File {
		for _, f := range files {
			fmt.Printf("  %v = %v (%d bytes, %v)\n",
				key, f.Filename, f.Size, f.Header.Get("Content-Type"))
		}
	}

	w.WriteHeader(http.StatusNoContent)
}
