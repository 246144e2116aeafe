package domain

// Components is the fixed, ordered component slate. Every composition
// vector in the flowsheet is indexed by this order.
var Components = []string{"A", "B", "C", "D", "E", "F", "G", "H", "Water"}

// NumComponents is the length of the component slate.
const NumComponents = 9

var componentIndex = func() map[string]int {
	m := make(map[string]int, len(Components))
	for i, name := range Components {
		m[name] = i
	}
	return m
}()

// ComponentIndex returns the position of a component in the slate.
func ComponentIndex(name string) (int, bool) {
	i, ok := componentIndex[name]
	return i, ok
}
