package server

import "fmt"

// ANSI colours for the development route listing.
const (
	colourGet    = "\033[32m"
	colourPost   = "\033[34m"
	colourPut    = "\033[36m"
	colourPatch  = "\033[35m"
	colourDelete = "\033[33m"
	colourOther  = "\033[90m"
	colourReset  = "\033[0m"
)

var methodColours = map[string]string{
	"GET":    colourGet,
	"POST":   colourPost,
	"PUT":    colourPut,
	"PATCH":  colourPatch,
	"DELETE": colourDelete,
}

// colourMethod pads the method to a fixed width and colours it.
func colourMethod(method string) string {
	colour, ok := methodColours[method]
	if !ok {
		colour = colourOther
	}
	return colour + fmt.Sprintf(" %-7s", method) + colourReset
}
