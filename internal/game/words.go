package game

// DefaultNames seat the roster when the configuration doesn't name players.
// One name per configured model, assigned in roster order.
var DefaultNames = []string{
	"Alice", "Bob", "Charlie", "Diana", "Emily",
	"Frank", "Grace", "Henry", "Iris", "Jack",
}

// DefaultWordPool is used when the simulation config doesn't ship its own
// pairs. Decoys are close enough to be plausible, far enough to matter.
var DefaultWordPool = []WordPair{
	{Word: "beach", Decoy: "desert"},
	{Word: "coffee", Decoy: "tea"},
	{Word: "piano", Decoy: "violin"},
	{Word: "winter", Decoy: "autumn"},
	{Word: "pizza", Decoy: "pasta"},
	{Word: "library", Decoy: "museum"},
	{Word: "airport", Decoy: "harbor"},
	{Word: "moon", Decoy: "sun"},
	{Word: "doctor", Decoy: "teacher"},
	{Word: "mountain", Decoy: "valley"},
	{Word: "circus", Decoy: "theater"},
	{Word: "submarine", Decoy: "sailboat"},
}
