// Command transcribe prints the phonetic pair for each word given on the
// command line.
//
// Usage:
//
//	transcribe [--accent british] hello world ...
//
// Exit codes: 0 = success, 1 = error, 2 = no words given.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/heartmarshall/phonetics-backend/internal/app"
	"github.com/heartmarshall/phonetics-backend/internal/domain"
	phoneticssvc "github.com/heartmarshall/phonetics-backend/internal/service/phonetics"
)

func main() {
	accentFlag := flag.String("accent", "", "accent tag (american, british, australian); default from config")
	flag.Parse()

	words := flag.Args()
	if len(words) == 0 {
		fmt.Fprintln(os.Stderr, "usage: transcribe [--accent TAG] WORD...")
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	a, err := app.New(ctx)
	if err != nil {
		log.Fatalf("transcribe: %v", err)
	}
	defer a.Close()

	accentTag := *accentFlag
	if accentTag == "" {
		accentTag = a.Cfg.Phonetics.DefaultAccent
	}
	accent := domain.ParseAccent(accentTag)

	failed := false
	for _, w := range words {
		pair, err := a.Phonetics.GetOrGenerate(ctx, w, accent)
		switch {
		case errors.Is(err, phoneticssvc.ErrNotTranscribable):
			fmt.Printf("%s\t(not available)\n", w)
		case err != nil:
			fmt.Fprintf(os.Stderr, "transcribe %s: %v\n", w, err)
			failed = true
		default:
			fmt.Printf("%s\t%s\t%s\n", w, pair.IPA, pair.Simplified)
		}
	}

	if failed {
		os.Exit(1)
	}
}
