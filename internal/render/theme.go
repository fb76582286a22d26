package render

// Theme holds colors for structure rendering.
type Theme struct {
	Background string
	NodeFill   string
	NodeBorder string
	TextColor  string

	// Edge colors by the kind of node they lead to.
	EdgeContains   string // shader → sub-shader → pass → stage
	EdgeProgram    string // stage → selected sub-program
	EdgeUsePass    string // sub-shader → UsePass alias
	EdgeDependency string // shader → dependent shader

	// Node accents.
	PassFill     string
	ProgramFill  string
	ExternalText string // UsePass targets and dependencies

	// Cluster styling.
	ClusterBorder string // subgraph cluster border
	ClusterLabel  string // subgraph cluster label text
}

// NASA is the NASA/Bauhaus theme: geometric, monochrome, sparse color.
var NASA = Theme{
	Background: "#F5F5F5",
	NodeFill:   "white",
	NodeBorder: "#1A1A1A",
	TextColor:  "#1A1A1A",

	EdgeContains:   "#424242", // dark gray
	EdgeProgram:    "#0B3D91", // NASA blue
	EdgeUsePass:    "#E65100", // deep orange
	EdgeDependency: "#9E9E9E", // gray

	PassFill:     "#ECEFF1", // blue-gray 50
	ProgramFill:  "#E3F2FD", // blue 50
	ExternalText: "#9E9E9E",

	ClusterBorder: "#BDBDBD",
	ClusterLabel:  "#757575",
}
