package jsonx

import (
	"reflect"
	"strings"
)

// DefaultMaxDepth bounds the generic walk. Provider payloads nest league →
// stage → group → rows; ten levels covers everything seen in the wild.
const DefaultMaxDepth = 10

// RowPredicate decides whether an object is a row of the table being sought.
type RowPredicate func(map[string]any) bool

// RowQuery configures FindRows.
type RowQuery struct {
	// PreferredPaths are dotted paths (e.g. "result.total", "data.standings")
	// tried in order before the generic walk. The first path whose target
	// yields at least one predicate-matching row wins.
	PreferredPaths []string

	// MaxDepth bounds the generic walk; DefaultMaxDepth when zero.
	MaxDepth int

	Predicate RowPredicate
}

// FindRows locates embedded row arrays inside an unknown JSON shape. It
// returns an empty slice on total miss, never an error.
//
// The generic walk is depth-bounded and cycle-safe. A branch stops descending
// once it yields a match; sibling branches continue. Keys containing "home"
// or "away" are skipped because they hold partial slices of the full table —
// request them through a preferred path when they are actually wanted.
func FindRows(root any, q RowQuery) []map[string]any {
	if q.Predicate == nil || root == nil {
		return nil
	}
	maxDepth := q.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	for _, path := range q.PreferredPaths {
		if rows := rowsAtPath(root, path, q.Predicate); len(rows) > 0 {
			return rows
		}
	}

	w := walker{pred: q.Predicate, visited: make(map[uintptr]struct{})}
	w.walk(root, maxDepth)
	if w.rows == nil {
		return []map[string]any{}
	}
	return w.rows
}

// ResolvePath follows a dotted path through nested objects, returning nil
// when any segment is missing or not an object.
func ResolvePath(root any, path string) any {
	current := root
	for _, segment := range strings.Split(path, ".") {
		obj, ok := current.(map[string]any)
		if !ok {
			return nil
		}
		current, ok = obj[segment]
		if !ok {
			return nil
		}
	}
	return current
}

func rowsAtPath(root any, path string, pred RowPredicate) []map[string]any {
	target := ResolvePath(root, path)
	if target == nil {
		return nil
	}
	var rows []map[string]any
	for _, obj := range ObjectRows(AsArray(target)) {
		if pred(obj) {
			rows = append(rows, obj)
		}
	}
	return rows
}

type walker struct {
	pred    RowPredicate
	visited map[uintptr]struct{}
	rows    []map[string]any
}

func (w *walker) walk(node any, depth int) {
	if depth <= 0 || node == nil {
		return
	}

	switch v := node.(type) {
	case []any:
		if !w.mark(v) {
			return
		}
		for _, child := range v {
			w.walk(child, depth-1)
		}
	case map[string]any:
		if !w.mark(v) {
			return
		}
		if w.pred(v) {
			w.rows = append(w.rows, v)
			return
		}
		for key, child := range v {
			lower := strings.ToLower(key)
			if strings.Contains(lower, "home") || strings.Contains(lower, "away") {
				continue
			}
			w.walk(child, depth-1)
		}
	}
}

// mark records a container in the visited set, returning false if it was
// already seen. Decoded JSON cannot cycle, but payloads assembled in memory
// can, and the walk must stay total either way.
func (w *walker) mark(container any) bool {
	ptr := reflect.ValueOf(container).Pointer()
	if _, seen := w.visited[ptr]; seen {
		return false
	}
	w.visited[ptr] = struct{}{}
	return true
}

// LooksLikeStandingRow reports whether an object plausibly is one row of a
// league table: it names a team and carries at least one tabular counter.
func LooksLikeStandingRow(obj map[string]any) bool {
	_, hasTeam := PickString(obj,
		"team", "team_name", "standing_team", "name", "club", "participant")
	if !hasTeam {
		if nested := AsObject(obj["team"]); nested != nil {
			_, hasTeam = PickString(nested, "name", "team_name")
		}
	}
	if !hasTeam {
		return false
	}
	_, hasPoints := PickNumber(obj,
		"points", "standing_PTS", "pts", "overall_pts", "point")
	_, hasPlayed := PickNumber(obj,
		"played", "standing_P", "overall_gp", "games_played", "matches_played", "matches")
	return hasPoints || hasPlayed
}
