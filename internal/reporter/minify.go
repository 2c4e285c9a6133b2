package reporter

import (
	"github.com/tdewolff/minify/v2"
	mhtml "github.com/tdewolff/minify/v2/html"
)

var htmlMinifier = func() *minify.M {
	m := minify.New()
	m.AddFunc("text/html", mhtml.Minify)
	return m
}()

func minifyHTML(data []byte) ([]byte, error) {
	return htmlMinifier.Bytes("text/html", data)
}
