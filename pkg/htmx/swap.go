package htmx

import "strings"

// SwapStrategy defines how HTMX should swap content into the target element.
// See https://htmx.org/attributes/hx-swap/
type SwapStrategy string

const (
	SwapInnerHTML   SwapStrategy = "innerHTML"   // Replace the inner html of the target element
	SwapOuterHTML   SwapStrategy = "outerHTML"   // Replace the entire target element with the response
	SwapBeforeBegin SwapStrategy = "beforebegin" // Insert before the target element
	SwapAfterBegin  SwapStrategy = "afterbegin"  // Insert before the first child of the target element
	SwapBeforeEnd   SwapStrategy = "beforeend"   // Insert after the last child of the target element
	SwapAfterEnd    SwapStrategy = "afterend"    // Insert after the target element
	SwapDelete      SwapStrategy = "delete"      // Delete the target element regardless of the response
	SwapNone        SwapStrategy = "none"        // Do not swap content
)

// With appends swap modifiers such as "swap:1s" or "scroll:top".
func (s SwapStrategy) With(modifiers ...string) SwapStrategy {
	parts := make([]string, 0, len(modifiers)+1)
	parts = append(parts, string(s))
	for _, m := range modifiers {
		if m = strings.TrimSpace(m); m != "" {
			parts = append(parts, m)
		}
	}
	return SwapStrategy(strings.Join(parts, " "))
}
