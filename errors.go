package askcampus

import "errors"

// ErrEmptyCorpus is returned when ingestion completes without producing a
// single usable document. Serving an empty index would answer every
// question with "no information found", so the build fails instead.
var ErrEmptyCorpus = errors.New("ingestion produced no documents")
