package httputil_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"

	"github.com/componentry/regtool/pkg/httputil"
)

func ExampleFetchJSON() {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"name": "registry", "components": 3}`)
	}))
	defer srv.Close()

	res := httputil.FetchJSON(context.Background(), srv.URL, httputil.FetchOptions{}, httputil.DefaultPolicy())

	fmt.Println("ok:", res.OK)
	fmt.Println("status:", res.Status)
	fmt.Println("attempts:", res.Attempts)
	data := res.Data.(map[string]any)
	fmt.Println("name:", data["name"])
	// Output:
	// ok: true
	// status: 200
	// attempts: 1
	// name: registry
}

func ExampleDefaultPolicy() {
	p := httputil.DefaultPolicy()
	fmt.Println("attempts:", p.MaxAttempts)
	fmt.Println("base:", p.BackoffBase)
	fmt.Println("cap:", p.BackoffCap)
	fmt.Println("retries 429:", p.RetryStatuses[429])
	// Output:
	// attempts: 6
	// base: 500ms
	// cap: 1m0s
	// retries 429: true
}
