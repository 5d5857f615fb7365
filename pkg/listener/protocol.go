package listener

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"

	"pathctx/pkg/completion"
)

// Request methods
const (
	MethodComplete     = "complete"
	MethodResolve      = "resolve"
	MethodCapabilities = "capabilities"
)

// ItemData carries what the resolve step needs to build a preview
type ItemData struct {
	Path  string `json:"path"`
	Type  string `json:"type"`
	Size  int64  `json:"size,omitempty"`
	MTime int64  `json:"mtime,omitempty"`
}

// Item is the wire form of a completion candidate
type Item struct {
	Label         string   `json:"label"`
	FilterText    string   `json:"filterText"`
	InsertText    string   `json:"insertText"`
	Word          string   `json:"word,omitempty"`
	Kind          string   `json:"kind"`
	Documentation string   `json:"documentation,omitempty"`
	Data          ItemData `json:"data"`
}

type Capabilities struct {
	ProtoVersion      string   `json:"protoVersion"`
	TriggerCharacters []string `json:"triggerCharacters"`
	KeywordPattern    string   `json:"keywordPattern"`
}

// Response answers a single request, Aborted is set when a newer request for
// the same buffer made this one stale
type Response struct {
	ID           string        `json:"id"`
	Items        []Item        `json:"items,omitempty"`
	Item         *Item         `json:"item,omitempty"`
	Capabilities *Capabilities `json:"capabilities,omitempty"`
	Aborted      bool          `json:"aborted,omitempty"`
	Error        string        `json:"error,omitempty"`
}

// ToItem converts a candidate to its wire form
func ToItem(c completion.Candidate) Item {
	item := Item{
		Label:         c.Label,
		FilterText:    c.FilterText,
		InsertText:    c.InsertText,
		Word:          c.WordOverride,
		Kind:          c.Kind.String(),
		Documentation: c.Documentation,
		Data: ItemData{
			Path: c.Meta.Path,
			Type: string(c.Meta.Type),
		},
	}
	if c.Meta.Stat != nil {
		item.Data.Size = c.Meta.Stat.Size()
		item.Data.MTime = c.Meta.Stat.ModTime().Unix()
	}
	return item
}

// ToItems converts candidates, never returning nil
func ToItems(candidates []completion.Candidate) []Item {
	items := make([]Item, 0, len(candidates))
	for _, c := range candidates {
		items = append(items, ToItem(c))
	}
	return items
}

func candidateFromItem(item gjson.Result) completion.Candidate {
	kind := completion.KindFile
	if item.Get("kind").String() == completion.KindFolder.String() {
		kind = completion.KindFolder
	}
	return completion.Candidate{
		Label:         item.Get("label").String(),
		FilterText:    item.Get("filterText").String(),
		InsertText:    item.Get("insertText").String(),
		WordOverride:  item.Get("word").String(),
		Kind:          kind,
		Documentation: item.Get("documentation").String(),
		Meta: completion.Metadata{
			Path: item.Get("data.path").String(),
			Type: completion.EntryType(item.Get("data.type").String()),
		},
	}
}

// message is a parsed request, the configuration blob is merged later
type message struct {
	ID         string
	Method     string
	Buffer     string
	Context    completion.CursorContext
	Mode       completion.Mode
	BufferDir  string
	ConfigBlob string
	Item       gjson.Result
}

func parseMessage(data []byte) (message, error) {
	if !gjson.ValidBytes(data) {
		return message{}, fmt.Errorf("invalid JSON request")
	}
	r := gjson.ParseBytes(data)

	m := message{
		ID:     r.Get("id").String(),
		Method: r.Get("method").String(),
		Buffer: r.Get("buffer").String(),
		Context: completion.CursorContext{
			Line:          r.Get("line").String(),
			Offset:        int(r.Get("offset").Int()),
			CommentString: r.Get("commentString").String(),
			Filetype:      r.Get("filetype").String(),
		},
		Mode:      completion.ParseMode(r.Get("mode").String()),
		BufferDir: r.Get("bufferDir").String(),
		Item:      r.Get("item"),
	}
	if cfg := r.Get("config"); cfg.Exists() {
		m.ConfigBlob = cfg.Raw
	}
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	switch m.Method {
	case MethodComplete, MethodResolve, MethodCapabilities:
	case "":
		return m, fmt.Errorf("missing method")
	default:
		return m, fmt.Errorf("unknown method %q", m.Method)
	}
	return m, nil
}
