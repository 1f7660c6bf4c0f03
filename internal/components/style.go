package components

import "golang.org/x/net/html"

// Weight is a font weight utility class.
type Weight string

const (
	WeightNormal   Weight = "font-normal"
	WeightMedium   Weight = "font-medium"
	WeightSemibold Weight = "font-semibold"
	WeightBold     Weight = "font-bold"
)

// TextSize is a font size utility class.
type TextSize string

const (
	SizeSmall TextSize = "text-sm"
	SizeXL    TextSize = "text-xl"
	SizeXL2   TextSize = "text-2xl"
	SizeXL4   TextSize = "text-4xl"
)

// StyledLink decorates a link with the hover color transition. An empty weight means medium.
func StyledLink(n *html.Node, weight Weight) *html.Node {
	if weight == "" {
		weight = WeightMedium
	}
	return AddClass(n,
		"cursor-pointer transition-colors",
		string(weight),
		"font-[system-ui] hover:text-teal-600")
}

// StyledHeading decorates a heading with bold, tight, balanced type.
func StyledHeading(n *html.Node, size TextSize) *html.Node {
	return AddClass(n,
		string(size),
		"font-bold tracking-tight text-balance text-zinc-950 font-[system-ui] dark:text-zinc-100")
}
