package vdom

// Event handler attributes use the camelCase prop names of client
// frameworks (onClick, onKeyDown). They exist so one tree can serve both
// client and server rendering: server rendering never emits them. Any
// other handler can be set with AttrOf("onPointerDown", fn).

// OnClick handles click events.
func OnClick(handler any) Attr { return attr("onClick", handler) }

// OnMouseEnter handles mouseenter events.
func OnMouseEnter(handler any) Attr { return attr("onMouseEnter", handler) }

// OnMouseLeave handles mouseleave events.
func OnMouseLeave(handler any) Attr { return attr("onMouseLeave", handler) }

// OnKeyDown handles keydown events.
func OnKeyDown(handler any) Attr { return attr("onKeyDown", handler) }

// Form events

// OnInput handles input events.
func OnInput(handler any) Attr { return attr("onInput", handler) }

// OnChange handles change events.
func OnChange(handler any) Attr { return attr("onChange", handler) }

// OnSubmit handles form submission.
func OnSubmit(handler any) Attr { return attr("onSubmit", handler) }

func OnFocus(handler any) Attr { return attr("onFocus", handler) }
func OnBlur(handler any) Attr  { return attr("onBlur", handler) }
