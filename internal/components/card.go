package components

import (
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Card renders one item as a clickable block.
func Card(item CardItem) *html.Node {
	header := Element(atom.Header, "flex flex-row items-center",
		StyledHeading(Element(atom.H2, "", Text(item.Title())), SizeXL2),
		tagList(item.Tags()))

	var date *html.Node
	if published, ok := item.PublishedDate(); ok {
		date = Time(published, "text-sm text-zinc-600/90 dark:text-zinc-400/90")
	}

	body := Element(atom.Div, "flex flex-col items-start",
		Element(atom.P, "mt-2 mb-3", Text(item.Description())),
		Element(atom.P, "text-sm font-semibold text-teal-800 font-[system-ui] dark:text-teal-500",
			Text(item.Action().Label()+" ›")))

	article := Element(atom.Article,
		"cursor-pointer flex flex-col items-start rounded-lg hover:bg-zinc-300 dark:hover:bg-zinc-700 "+
			"transition-colors duration-300 ease-in-out p-4",
		header, date, body)

	return Link(item.URL(), item.NewTab(), article)
}

func tagList(tags []string) *html.Node {
	if len(tags) == 0 {
		return nil
	}
	list := Element(atom.Div, "flex")
	for _, tag := range tags {
		list.AppendChild(Element(atom.Span,
			"bg-zinc-300 dark:bg-zinc-800 rounded-lg text-xs text-zinc-900 dark:text-zinc-200 font-[system-ui] py-1 px-1 mx-2",
			Text(tag)))
	}
	return list
}

// CardCollection renders items as a vertical stack of cards in the given order.
func CardCollection[T CardItem](items []T) *html.Node {
	stack := Element(atom.Div, "flex flex-col sm:p-4 my-4 space-y-4")
	for _, item := range items {
		stack.AppendChild(Card(item))
	}
	return stack
}
