package catalog

import (
	"context"
	"fmt"
	"regexp"
	"sort"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/IMADDABLIGI/Techno-Shoe-AIAgent/internal/agent/model"
)

// fakeStore evaluates the subset of query operators the catalog emits.
type fakeStore struct {
	shoes []model.Shoe
	err   error

	findCalls   int
	lastFilter  bson.M
	lastLimit   int64
	lastPipeline mongo.Pipeline
}

func (f *fakeStore) Find(_ context.Context, filter bson.M, limit int64) ([]model.Shoe, error) {
	f.findCalls++
	f.lastFilter = filter
	f.lastLimit = limit
	if f.err != nil {
		return nil, f.err
	}
	out := []model.Shoe{}
	for _, s := range f.shoes {
		if limit > 0 && int64(len(out)) >= limit {
			break
		}
		if matches(s, filter) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeStore) Aggregate(_ context.Context, pipeline mongo.Pipeline) ([]model.Shoe, error) {
	f.lastPipeline = pipeline
	if f.err != nil {
		return nil, f.err
	}
	out := append([]model.Shoe(nil), f.shoes...)
	for _, stage := range pipeline {
		switch stage[0].Key {
		case "$match":
			kept := out[:0:0]
			for _, s := range out {
				if matches(s, stage[0].Value.(bson.M)) {
					kept = append(kept, s)
				}
			}
			out = kept
		case "$sort":
			keys := stage[0].Value.(bson.D)
			sort.SliceStable(out, func(i, j int) bool {
				for _, k := range keys {
					a, b := numeric(out[i], k.Key), numeric(out[j], k.Key)
					if a == b {
						continue
					}
					if k.Value.(int) < 0 {
						return a > b
					}
					return a < b
				}
				return false
			})
		case "$limit":
			if n := stage[0].Value.(int); len(out) > n {
				out = out[:n]
			}
		}
	}
	return out, nil
}

func (f *fakeStore) Distinct(_ context.Context, field string) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := []string{}
	for _, s := range f.shoes {
		out = append(out, text(s, field))
	}
	return out, nil
}

func matches(s model.Shoe, filter bson.M) bool {
	for field, cond := range filter {
		switch v := cond.(type) {
		case primitive.Regex:
			if !regexp.MustCompile("(?i)" + v.Pattern).MatchString(text(s, field)) {
				return false
			}
		case bson.M:
			n := numeric(s, field)
			if lo, ok := v["$gte"].(float64); ok && n < lo {
				return false
			}
			if hi, ok := v["$lte"].(float64); ok && n > hi {
				return false
			}
		case int:
			found := false
			for _, size := range s.Sizes {
				found = found || size == v
			}
			if !found {
				return false
			}
		case bool:
			if s.InStock != v {
				return false
			}
		default:
			panic(fmt.Sprintf("unsupported condition %T on %s", cond, field))
		}
	}
	return true
}

func text(s model.Shoe, field string) string {
	switch field {
	case FieldName:
		return s.Name
	case FieldBrand:
		return s.Brand
	case FieldCategory:
		return s.Category
	case FieldColor:
		return s.Color
	case FieldGender:
		return s.Gender
	}
	panic("unknown text field " + field)
}

func numeric(s model.Shoe, field string) float64 {
	switch field {
	case FieldPrice:
		return s.Price
	case FieldRating:
		return s.Rating
	}
	panic("unknown numeric field " + field)
}
