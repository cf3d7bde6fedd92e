package core

import (
	"slices"
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

// Hand-written MUS serializers for the domain types. The layouts are simple
// enough that generated code would be heavier than the serializers
// themselves.

// IDMUS serializes IDs as varint-encoded uint64s.
var IDMUS = idMUS{}

type idMUS struct{}

func (idMUS) Marshal(id ID, bs []byte) int {
	return varint.Uint64.Marshal(uint64(id), bs)
}

func (idMUS) Unmarshal(bs []byte) (ID, int, error) {
	v, n, err := varint.Uint64.Unmarshal(bs)
	return ID(v), n, err
}

func (idMUS) Size(id ID) int {
	return varint.Uint64.Size(uint64(id))
}

// IDSliceMUS serializes []ID as a varint count followed by the elements.
var IDSliceMUS = idSliceMUS{}

type idSliceMUS struct{}

func (idSliceMUS) Marshal(ids []ID, bs []byte) int {
	n := varint.Int.Marshal(len(ids), bs)
	for _, id := range ids {
		n += IDMUS.Marshal(id, bs[n:])
	}
	return n
}

func (idSliceMUS) Unmarshal(bs []byte) ([]ID, int, error) {
	count, n, err := varint.Int.Unmarshal(bs)
	if err != nil {
		return nil, n, err
	}
	if count < 0 {
		return nil, n, ErrInvalidDocument
	}
	ids := make([]ID, 0, count)
	for i := 0; i < count; i++ {
		id, n1, err := IDMUS.Unmarshal(bs[n:])
		n += n1
		if err != nil {
			return nil, n, err
		}
		ids = append(ids, id)
	}
	return ids, n, nil
}

func (idSliceMUS) Size(ids []ID) int {
	size := varint.Int.Size(len(ids))
	for _, id := range ids {
		size += IDMUS.Size(id)
	}
	return size
}

// Float32SliceMUS serializes []float32 as a varint count followed by raw
// 4-byte elements. Used for embedding matrices, where fixed-width encoding
// beats varint on both size and speed.
var Float32SliceMUS = float32SliceMUS{}

type float32SliceMUS struct{}

func (float32SliceMUS) Marshal(vs []float32, bs []byte) int {
	n := varint.Int.Marshal(len(vs), bs)
	for _, v := range vs {
		n += raw.Float32.Marshal(v, bs[n:])
	}
	return n
}

func (float32SliceMUS) Unmarshal(bs []byte) ([]float32, int, error) {
	count, n, err := varint.Int.Unmarshal(bs)
	if err != nil {
		return nil, n, err
	}
	if count < 0 {
		return nil, n, ErrInvalidDocument
	}
	vs := make([]float32, 0, count)
	for i := 0; i < count; i++ {
		v, n1, err := raw.Float32.Unmarshal(bs[n:])
		n += n1
		if err != nil {
			return nil, n, err
		}
		vs = append(vs, v)
	}
	return vs, n, nil
}

func (float32SliceMUS) Size(vs []float32) int {
	size := varint.Int.Size(len(vs))
	for _, v := range vs {
		size += raw.Float32.Size(v)
	}
	return size
}

// DocumentMUS serializes Documents. Field order is fixed: Id, Location,
// Title, Body, Category, Attributes, FetchedAt (microseconds since epoch).
var DocumentMUS = documentMUS{}

type documentMUS struct{}

func (documentMUS) Marshal(doc Document, bs []byte) int {
	n := IDMUS.Marshal(doc.Id, bs)
	n += ord.String.Marshal(doc.Location, bs[n:])
	n += ord.String.Marshal(doc.Title, bs[n:])
	n += ord.String.Marshal(doc.Body, bs[n:])
	n += ord.String.Marshal(string(doc.Category), bs[n:])
	n += varint.Int.Marshal(len(doc.Attributes), bs[n:])
	for _, k := range sortedKeys(doc.Attributes) {
		n += ord.String.Marshal(k, bs[n:])
		n += ord.String.Marshal(doc.Attributes[k], bs[n:])
	}
	n += varint.Int64.Marshal(doc.FetchedAt.UnixMicro(), bs[n:])
	return n
}

func (documentMUS) Unmarshal(bs []byte) (Document, int, error) {
	var doc Document
	id, n, err := IDMUS.Unmarshal(bs)
	if err != nil {
		return doc, n, err
	}
	doc.Id = id

	for _, field := range []*string{&doc.Location, &doc.Title, &doc.Body} {
		s, n1, err := ord.String.Unmarshal(bs[n:])
		n += n1
		if err != nil {
			return doc, n, err
		}
		*field = s
	}

	cat, n1, err := ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return doc, n, err
	}
	doc.Category = Category(cat)

	count, n1, err := varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return doc, n, err
	}
	if count < 0 {
		return doc, n, ErrInvalidDocument
	}
	if count > 0 {
		doc.Attributes = make(map[string]string, count)
	}
	for i := 0; i < count; i++ {
		k, n1, err := ord.String.Unmarshal(bs[n:])
		n += n1
		if err != nil {
			return doc, n, err
		}
		v, n1, err := ord.String.Unmarshal(bs[n:])
		n += n1
		if err != nil {
			return doc, n, err
		}
		doc.Attributes[k] = v
	}

	micros, n1, err := varint.Int64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return doc, n, err
	}
	doc.FetchedAt = time.UnixMicro(micros).UTC()

	return doc, n, nil
}

func (documentMUS) Size(doc Document) int {
	size := IDMUS.Size(doc.Id)
	size += ord.String.Size(doc.Location)
	size += ord.String.Size(doc.Title)
	size += ord.String.Size(doc.Body)
	size += ord.String.Size(string(doc.Category))
	size += varint.Int.Size(len(doc.Attributes))
	for k, v := range doc.Attributes {
		size += ord.String.Size(k)
		size += ord.String.Size(v)
	}
	size += varint.Int64.Size(doc.FetchedAt.UnixMicro())
	return size
}

// sortedKeys returns map keys in ascending order so marshalling is
// deterministic across runs.
func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
