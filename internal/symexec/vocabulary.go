// Package symexec implements the Symbolic Execution Engine: it walks an
// abstract Program statement by statement, evaluating every built-in
// expression symbolically while treating input() calls as fresh
// symbolic variables, and stops the moment it hits a statement that
// isn't ready — an API call with a still-symbolic argument. That
// interruption point is exactly what the Concretizer (internal/tester)
// resumes from. Grounded throughout on see/see.cc.
package symexec

// builtins is the closed vocabulary of names that are NOT API calls:
// arithmetic, comparison, logical connectives, input, and the set/map/
// sequence operations the constraint language understands natively.
// Anything outside this set is assumed to name a real API the
// embedding application implements. Grounded verbatim on
// SEE::isAPI's builtInFunctions set (see.cc).
var builtins = map[string]struct{}{
	"Add": {}, "Sub": {}, "Mul": {}, "Div": {},
	"Eq": {}, "Lt": {}, "Gt": {}, "Le": {}, "Ge": {}, "Neq": {},
	"=": {}, "==": {}, "!=": {}, "<>": {}, "<": {}, ">": {}, "<=": {}, ">=": {},
	"And": {}, "Or": {}, "Not": {}, "Implies": {},
	"and": {}, "or": {}, "not": {}, "&&": {}, "||": {}, "!": {},
	"input": {},
	"in": {}, "not_in": {}, "member": {}, "not_member": {}, "contains": {}, "not_contains": {},
	"union": {}, "intersection": {}, "intersect": {}, "difference": {}, "diff": {}, "minus": {},
	"subset": {}, "is_subset": {}, "add_to_set": {}, "remove_from_set": {}, "is_empty_set": {},
	"get": {}, "put": {}, "lookup": {}, "select": {}, "store": {}, "update": {},
	"contains_key": {}, "has_key": {},
	"concat": {}, "append_list": {}, "length": {}, "at": {}, "nth": {},
	"prefix": {}, "suffix": {}, "contains_seq": {},
	"Any": {}, "any": {},
	"'": {},
}

// IsAPI reports whether a FuncCall names a real API implementation
// rather than a built-in constraint-language operator.
func IsAPI(name string) bool {
	_, builtin := builtins[name]
	return !builtin
}
