package plan

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

type daySpanKey struct{}

var planValidate = newPlanValidator()

func newPlanValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	v.RegisterStructValidationCtx(validatePlan, PlanResult{})
	return v
}

// validatePlan enforces the hotel count, consecutive day numbering from 1
// and, when the caller supplied one, the day count implied by the request
// duration. A failing slice tag skips the dive, so the hotel count is
// checked here.
func validatePlan(ctx context.Context, sl validator.StructLevel) {
	p, ok := sl.Current().Interface().(PlanResult)
	if !ok {
		return
	}
	switch n := len(p.Hotels); {
	case n < 1:
		sl.ReportError(p.Hotels, "hotels", "Hotels", "min", "1")
	case n > 2:
		sl.ReportError(p.Hotels, "hotels", "Hotels", "max", "2")
	}
	for i, d := range p.Days {
		if d.Day != i+1 {
			sl.ReportError(d.Day, fmt.Sprintf("days[%d].day", i), "Day", "sequence", strconv.Itoa(i+1))
		}
	}
	span, ok := ctx.Value(daySpanKey{}).(DaySpan)
	if ok && len(p.Days) > 0 && !span.Allows(len(p.Days)) {
		sl.ReportError(p.Days, "days", "Days", "dayspan", span.String())
	}
}

// violations collects every failed path once, in discovery order.
type violations struct {
	seen    map[string]bool
	paths   []string
	reasons []string
}

func (v *violations) add(path, reason string) {
	if v.seen == nil {
		v.seen = make(map[string]bool)
	}
	if v.seen[path] {
		return
	}
	v.seen[path] = true
	v.paths = append(v.paths, path)
	v.reasons = append(v.reasons, path+": "+reason)
}

func (v *violations) empty() bool { return len(v.paths) == 0 }

func (v *violations) err() *Error {
	return &Error{
		Kind:   KindValidation,
		Fields: v.paths,
		Err:    errors.New(strings.Join(v.reasons, "; ")),
	}
}

// Validate parses sanitized model output and checks it against the plan
// contract. Every violated field path is reported; unknown fields are ignored.
// A zero span only requires at least one day.
func Validate(sanitized string, span DaySpan) (*PlanResult, error) {
	root, err := decodeTree(sanitized)
	if err != nil {
		return nil, newError(KindMalformedOutput, err)
	}

	var v violations
	p, ok := decodePlan(root, &v)
	if !ok {
		return nil, v.err()
	}

	if span.Min < 1 {
		span.Min = 1
	}
	ctx := context.WithValue(context.Background(), daySpanKey{}, span)
	if err := planValidate.StructCtx(ctx, p); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return nil, newError(KindValidation, err)
		}
		for _, fe := range verrs {
			reason := fe.Tag()
			if fe.Param() != "" {
				reason += "=" + fe.Param()
			}
			v.add(fieldPath(fe.Namespace()), reason)
		}
	}

	if !v.empty() {
		return nil, v.err()
	}
	return &p, nil
}

// decodeTree parses one JSON value keeping numbers as json.Number, so an
// out-of-range coordinate is reported against its path instead of failing
// the whole parse.
func decodeTree(s string) (any, error) {
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()
	var root any
	if err := dec.Decode(&root); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after top-level value")
	}
	return root, nil
}

// fieldPath drops the root struct name from a validator namespace.
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func join(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

// decodePlan walks the parsed JSON, checking presence and primitive types
// while building the typed plan. It reports false only when the root is not
// an object.
func decodePlan(root any, v *violations) (PlanResult, bool) {
	var p PlanResult
	obj, ok := root.(map[string]any)
	if !ok {
		v.add("$", "must be an object")
		return p, false
	}

	p.Title = stringField(obj, "", "title", v)

	if arr, ok := arrayField(obj, "", "days", true, v); ok {
		p.Days = make([]DayPlan, 0, len(arr))
		for i, el := range arr {
			p.Days = append(p.Days, decodeDay(el, fmt.Sprintf("days[%d]", i), v))
		}
	}
	if arr, ok := arrayField(obj, "", "hotels", true, v); ok {
		p.Hotels = make([]HotelSuggestion, 0, len(arr))
		for i, el := range arr {
			p.Hotels = append(p.Hotels, decodeHotel(el, fmt.Sprintf("hotels[%d]", i), v))
		}
	}
	p.PackingList = stringArrayField(obj, "", "packingList", false, v)
	p.Advice = stringArrayField(obj, "", "advice", false, v)
	return p, true
}

func decodeDay(el any, path string, v *violations) DayPlan {
	var d DayPlan
	obj, ok := el.(map[string]any)
	if !ok {
		v.add(path, "must be an object")
		return d
	}
	d.Day = intField(obj, path, "day", v)
	if arr, ok := arrayField(obj, path, "schedule", true, v); ok {
		d.Schedule = make([]ScheduleItem, 0, len(arr))
		for i, item := range arr {
			d.Schedule = append(d.Schedule, decodeScheduleItem(item, fmt.Sprintf("%s.schedule[%d]", path, i), v))
		}
	}
	return d
}

func decodeScheduleItem(el any, path string, v *violations) ScheduleItem {
	var s ScheduleItem
	obj, ok := el.(map[string]any)
	if !ok {
		v.add(path, "must be an object")
		return s
	}
	s.Time = stringField(obj, path, "time", v)
	s.Place = stringField(obj, path, "place", v)
	s.Description = stringField(obj, path, "description", v)
	s.Lat = numberField(obj, path, "lat", v)
	s.Lng = numberField(obj, path, "lng", v)
	return s
}

func decodeHotel(el any, path string, v *violations) HotelSuggestion {
	var h HotelSuggestion
	obj, ok := el.(map[string]any)
	if !ok {
		v.add(path, "must be an object")
		return h
	}
	h.Name = stringField(obj, path, "name", v)
	h.Area = stringField(obj, path, "area", v)
	h.Price = stringField(obj, path, "price", v)
	h.Features = stringArrayField(obj, path, "features", true, v)
	h.Lat = numberField(obj, path, "lat", v)
	h.Lng = numberField(obj, path, "lng", v)
	return h
}

func stringField(obj map[string]any, prefix, key string, v *violations) string {
	path := join(prefix, key)
	raw, ok := obj[key]
	if !ok || raw == nil {
		v.add(path, "required")
		return ""
	}
	s, ok := raw.(string)
	if !ok {
		v.add(path, "must be a string")
		return ""
	}
	return s
}

func numberField(obj map[string]any, prefix, key string, v *violations) float64 {
	path := join(prefix, key)
	raw, ok := obj[key]
	if !ok || raw == nil {
		v.add(path, "required")
		return 0
	}
	n, ok := raw.(json.Number)
	if !ok {
		v.add(path, "must be a number")
		return 0
	}
	f, err := strconv.ParseFloat(n.String(), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		v.add(path, "must be finite")
		return 0
	}
	return f
}

func intField(obj map[string]any, prefix, key string, v *violations) int {
	path := join(prefix, key)
	f := numberField(obj, prefix, key, v)
	if v.seen[path] {
		return 0
	}
	if f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		v.add(path, "must be an integer")
		return 0
	}
	return int(f)
}

func arrayField(obj map[string]any, prefix, key string, required bool, v *violations) ([]any, bool) {
	path := join(prefix, key)
	raw, ok := obj[key]
	if !ok || raw == nil {
		if required {
			v.add(path, "required")
		}
		return nil, false
	}
	arr, ok := raw.([]any)
	if !ok {
		v.add(path, "must be an array")
		return nil, false
	}
	return arr, true
}

func stringArrayField(obj map[string]any, prefix, key string, required bool, v *violations) []string {
	arr, ok := arrayField(obj, prefix, key, required, v)
	if !ok {
		return nil
	}
	path := join(prefix, key)
	out := make([]string, 0, len(arr))
	for i, el := range arr {
		s, ok := el.(string)
		if !ok {
			v.add(fmt.Sprintf("%s[%d]", path, i), "must be a string")
			continue
		}
		out = append(out, s)
	}
	return out
}
