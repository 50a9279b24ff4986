package core

import (
	"context"
	"fmt"
	"maps"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/huangsam/benchboard/core/algo"
	"github.com/huangsam/benchboard/internal/contract"
	"github.com/huangsam/benchboard/schema"
)

// ParseSubmission converts raw form values into a record of the variant.
// Every malformed field is reported in one ValidationError, in form order,
// followed by unknown fields in name order. The aggregate is computed but no ID is assigned.
func ParseSubmission(v schema.Variant, fields map[string]string) (schema.BenchmarkRecord, error) {
	record := schema.BenchmarkRecord{
		Text:    map[string]string{},
		Scores:  map[string]float64{},
		Pairs:   map[string]schema.Pair{},
		Metrics: map[string]float64{},
	}
	var problems []schema.FieldProblem
	known := make(map[string]struct{}, len(fields))

	for _, f := range v.Fields {
		switch f.Kind {
		case schema.NameKind, schema.TextKind:
			known[f.Key] = struct{}{}
			raw := strings.TrimSpace(fields[f.Key])
			if raw == "" {
				if f.Required {
					problems = append(problems, schema.FieldProblem{Field: f.Key, Reason: "required"})
				}
				continue
			}
			if f.Kind == schema.NameKind {
				record.Name = raw
			} else {
				record.Text[f.Key] = raw
			}

		case schema.ScoreKind, schema.MetricKind:
			known[f.Key] = struct{}{}
			value, ok, problem := parseNumber(f, f.Key, fields[f.Key])
			if problem != nil {
				problems = append(problems, *problem)
				continue
			}
			if !ok {
				continue
			}
			if f.Kind == schema.ScoreKind {
				record.Scores[f.Key] = value
			} else {
				record.Metrics[f.Key] = value
			}

		case schema.PairKind:
			singleKey, multiKey := f.PairColumns()
			known[singleKey] = struct{}{}
			known[multiKey] = struct{}{}
			single, singleOK, p1 := parseNumber(f, singleKey, fields[singleKey])
			multi, multiOK, p2 := parseNumber(f, multiKey, fields[multiKey])
			if p1 != nil {
				problems = append(problems, *p1)
			}
			if p2 != nil {
				problems = append(problems, *p2)
			}
			if singleOK && multiOK {
				record.Pairs[f.Key] = schema.Pair{Singleton: single, Multiturn: multi}
			}
		}
	}

	for _, key := range slices.Sorted(maps.Keys(fields)) {
		if _, ok := known[key]; !ok {
			problems = append(problems, schema.FieldProblem{Field: key, Reason: "unknown field"})
		}
	}

	if len(problems) > 0 {
		return schema.BenchmarkRecord{}, &schema.ValidationError{Variant: v, Problems: problems}
	}
	record.Aggregate = algo.ComputeAggregate(v, record)
	return record, nil
}

// parseNumber parses one numeric input. It reports ok=false for an empty optional value.
func parseNumber(f schema.FieldSpec, name, raw string) (float64, bool, *schema.FieldProblem) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		if f.Required {
			return 0, false, &schema.FieldProblem{Field: name, Reason: "required"}
		}
		return 0, false, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false, &schema.FieldProblem{Field: name, Reason: "must be a number"}
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, false, &schema.FieldProblem{Field: name, Reason: "must be finite"}
	}
	if f.Max > 0 && (value < f.Min || value > f.Max) {
		return 0, false, &schema.FieldProblem{Field: name, Reason: fmt.Sprintf("must be between %g and %g", f.Min, f.Max)}
	}
	if value < f.Min {
		return 0, false, &schema.FieldProblem{Field: name, Reason: fmt.Sprintf("must be at least %g", f.Min)}
	}
	return value, true, nil
}

// SubmitRecord validates a raw submission, assigns a new ID and appends it to the store.
// It returns the stored record with its computed aggregate.
func SubmitRecord(ctx context.Context, store contract.RecordStore, v schema.Variant, fields map[string]string) (schema.BenchmarkRecord, error) {
	record, err := ParseSubmission(v, fields)
	if err != nil {
		return schema.BenchmarkRecord{}, err
	}
	if store == nil {
		return schema.BenchmarkRecord{}, &schema.SubmitError{Variant: v, Err: fmt.Errorf("no record store configured")}
	}
	record.ID = uuid.NewString()
	if err := store.InsertRecord(ctx, v, record); err != nil {
		return schema.BenchmarkRecord{}, &schema.SubmitError{Variant: v, Err: err}
	}
	return record, nil
}

// ApplySeed submits every seed entry of every variant through SubmitRecord.
// It stops at the first failure and reports how many records were stored.
func ApplySeed(ctx context.Context, store contract.RecordStore, boards map[schema.VariantName][]map[string]string) (int, error) {
	count := 0
	for _, v := range schema.AllVariants {
		for i, entry := range boards[v.Name] {
			if _, err := SubmitRecord(ctx, store, v, entry); err != nil {
				return count, fmt.Errorf("seed %s entry %d: %w", v.Name, i+1, err)
			}
			count++
		}
	}
	return count, nil
}
