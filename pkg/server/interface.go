/*
Package server bridges a host text field to an input session over msgpack.

The host owns the real document. It streams keyboard events on stdin and
applies the edit operations returned on stdout; the server keeps a shadow of
the text before the cursor so cursor context and suggestions can be derived
without reading the host's buffer.

# IPC

Each request is one msgpack map. "before" is optional: when present it
replaces the shadow text (trimmed to the configured context size), which is
how a host resynchronizes after the user moves the cursor.

	{"id": "7", "ev": "char", "before": "see you to", "row": 0, "col": 4}

The response lists the edits in order, the suggestion bar, the shift mode and
the active language. "t" is the handling time in microseconds.

	{"id": "7", "ops": [{"o": "i", "t": "t"}], "s": ["tomorrow", "tonight"], "sh": "off", "lang": "English", "t": 41}

Key labels ("kl") are only included when they changed, e.g. after a shift
press or a language switch, and always in the reply to "hello". The hello
reply also carries "ri", the key repeat interval in milliseconds the host
should drive "tick" events at.

Failures are reported per request and never stop the loop:

	{"id": "8", "e": "unknown event \"jump\"", "c": 400}

# Events

	hello                      activate and report state
	char      row, col         primary key
	text      w                literal characters; one-shot shift capitalizes the first
	secondary row, col         swipe up on a key
	tertiary  row, col         swipe down on a key
	shift                      shift press
	delete    g                tap | swipe | tab
	space, tab, return
	accept    w                replace the word being typed with w (no-op without one)
	next, prev                 language cycle
	hold      k                delete | space, arms key repeat
	tick                       one repeat interval
	release                    end of a held key
*/
package server

// Request is one host event.
type Request struct {
	ID      string  `msgpack:"id"`
	Event   string  `msgpack:"ev"`
	Before  *string `msgpack:"before,omitempty"`
	Row     int     `msgpack:"row,omitempty"`
	Col     int     `msgpack:"col,omitempty"`
	Gesture string  `msgpack:"g,omitempty"`
	Word    string  `msgpack:"w,omitempty"`
	Key     string  `msgpack:"k,omitempty"`
}

// EditOp is one edit the host must apply: "d" deletes N characters before
// the cursor, "i" inserts T at the cursor.
type EditOp struct {
	Op    string `msgpack:"o"`
	Count int    `msgpack:"n,omitempty"`
	Text  string `msgpack:"t,omitempty"`
}

// KeyLabels is the text shown on every key, row by row.
type KeyLabels struct {
	Primary   [][]string `msgpack:"p"`
	Secondary [][]string `msgpack:"s"`
	Tertiary  [][]string `msgpack:"t"`
}

// Response answers a handled request.
type Response struct {
	ID          string     `msgpack:"id"`
	Ops         []EditOp   `msgpack:"ops"`
	Suggestions []string   `msgpack:"s"`
	Shift       string     `msgpack:"sh"`
	Language    string     `msgpack:"lang"`
	Labels      *KeyLabels `msgpack:"kl,omitempty"`
	RepeatMs    int        `msgpack:"ri,omitempty"`
	TimeTaken   int64      `msgpack:"t"`
}

// ErrorResponse reports a request that could not be handled.
type ErrorResponse struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
