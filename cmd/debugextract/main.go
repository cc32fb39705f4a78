package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/hyperifyio/newsdigest/internal/extract"
	"github.com/hyperifyio/newsdigest/internal/fetch"
)

// debugextract dumps every cascade stage decision for one page: which
// selectors matched, how many blocks survived, and which stage won.
func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: debugextract <url | html-file>")
		os.Exit(2)
	}
	arg := os.Args[1]

	var body []byte
	var err error
	if strings.HasPrefix(arg, "http://") || strings.HasPrefix(arg, "https://") {
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
		defer cancel()
		client := &fetch.Client{Timeout: 15 * time.Second}
		body, err = client.Get(ctx, arg)
	} else {
		body, err = os.ReadFile(arg)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "read input:", err)
		os.Exit(1)
	}

	opts := extract.DefaultOptions()
	for _, r := range extract.Explain(body, arg, opts) {
		marker := " "
		if r.Accepted {
			marker = "*"
		}
		if r.Selector != "" {
			fmt.Printf("%s %-18s %-40s blocks=%d\n", marker, r.Strategy, r.Selector, r.Blocks)
		} else {
			fmt.Printf("%s %-18s %-40s blocks=%d\n", marker, r.Strategy, "-", r.Blocks)
		}
	}

	art := extract.FromHTML(body, arg, opts)
	fmt.Printf("\nwinner: %s", art.Strategy)
	if art.Selector != "" {
		fmt.Printf(" (%s)", art.Selector)
	}
	fmt.Printf(" chars=%d\n", art.Chars)
}
