package site

import (
	"context"
	"fmt"
	"net/http"

	"github.com/shellmarks/catalog/internal/editor"
)

// Serve starts a local HTTP file server for the generated catalog.
// Action links need the catalog server; this only serves the static files.
func Serve(dir string, port int, open bool) error {
	addr := fmt.Sprintf(":%d", port)
	url := fmt.Sprintf("http://localhost:%d", port)

	if open {
		go OpenBrowser(url)
	}

	fmt.Printf("Serving catalog at %s\n", url)
	fmt.Println("Press Ctrl+C to stop.")

	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.Dir(dir)))

	return http.ListenAndServe(addr, mux)
}

// OpenBrowser opens the given URL with the platform's default handler.
func OpenBrowser(url string) {
	_ = (&editor.CommandOpener{}).Open(context.Background(), url)
}
