package wirecodec

import "sync"

// --- 9P-style message fixtures ---

type Version struct {
	Size    uint32
	Typ     uint8
	Tag     uint16
	Msize   uint32
	Version string
}

type Version8 struct {
	Size    uint32
	Typ     uint8
	Tag     uint16
	Msize   uint32
	Version string `wire:"str8"`
}

type Version16 struct {
	Size    uint32
	Typ     uint8
	Tag     uint16
	Msize   uint32
	Version string `wire:"str16"`
}

type Version32 struct {
	Size    uint32
	Typ     uint8
	Tag     uint16
	Msize   uint32
	Version string `wire:"str32"`
}

type Version64 struct {
	Size    uint32
	Typ     uint8
	Tag     uint16
	Msize   uint32
	Version string `wire:"str64"`
}

type Dirent struct {
	Offset uint64
	Typ    uint8
	Name   string `wire:"str16"`
}

type Rreaddir struct {
	Size uint32
	Typ  uint8
	Tag  uint16
	Data []Dirent `wire:"count8"`
}

type Rreaddir16 struct {
	Size uint32
	Typ  uint8
	Tag  uint16
	Data []Dirent `wire:"count16"`
}

type Rreaddir32 struct {
	Size uint32
	Typ  uint8
	Tag  uint16
	Data []Dirent `wire:"count32"`
}

type Rreaddir64 struct {
	Size uint32
	Typ  uint8
	Tag  uint16
	Data []Dirent `wire:"count64"`
}

// RreaddirSized frames its entries by total byte length instead of count.
type RreaddirSized struct {
	Size uint32
	Typ  uint8
	Tag  uint16
	Data []Dirent `wire:"size32"`
}

// --- Small shapes ---

type Header struct {
	Size uint32
	Typ  uint8
	Tag  uint16
}

type Stat struct {
	Hdr   Header
	Mode  uint32
	Owner string `wire:"str8"`
}

type Point struct {
	X uint16
	Y uint16
}

type PolyCount struct {
	Points []Point `wire:"count8"`
}

type PolySize struct {
	Points []Point `wire:"size8"`
}

type Named struct {
	Name  string `wire:"str8"`
	After uint32
}

type Pair struct {
	A uint32
	B string `wire:"str8"`
}

type Signed struct {
	A int8
	B int16
	C int32
	D int64
	E bool
}

type Blob []byte

type Payload struct {
	Magic [4]byte
	Data  Blob     `wire:"count16"`
	Tags  []string `wire:"size16/str8"`
}

type Node struct {
	Val  uint8
	Kids []Node `wire:"count8"`
}

type NameList struct {
	Names []string `wire:"size8"`
	Tail  uint8
}

// Shapes is a byte budget of byte budgets.
type Shapes struct {
	Polys []PolySize `wire:"size16"`
}

type Many struct {
	Items []uint32 `wire:"count32"`
}

type Skips struct {
	A      uint8
	hidden uint32
	Cache  map[string]int `wire:"-"`
	B      uint8
}

// --- Canonical values and their encodings ---

var muffin = Version{Size: 47, Typ: 9, Tag: 15, Msize: 99, Version: "muffin"}

var muffinBytes = []byte{47, 0, 0, 0, 9, 15, 0, 99, 0, 0, 0, 'm', 'u', 'f', 'f', 'i', 'n', 0}

var header = []byte{47, 0, 0, 0, 9, 15, 0, 99, 0, 0, 0}

var dirents = []Dirent{
	{Offset: 37, Typ: 2, Name: "blueberry"},
	{Offset: 73, Typ: 9, Name: "muffin"},
}

// direntBytes is the two entries of dirents back to back.
var direntBytes = []byte{
	37, 0, 0, 0, 0, 0, 0, 0, 2, 9, 0, 'b', 'l', 'u', 'e', 'b', 'e', 'r', 'r', 'y',
	73, 0, 0, 0, 0, 0, 0, 0, 9, 6, 0, 'm', 'u', 'f', 'f', 'i', 'n',
}

func concat(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// recordingLogger keeps every message it receives and the level it came at.
type recordingLogger struct {
	mu       sync.Mutex
	messages []string
	levels   []string
}

func (l *recordingLogger) record(level, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = append(l.messages, msg)
	l.levels = append(l.levels, level)
}

func (l *recordingLogger) Info(msg string, _ ...any)  { l.record("info", msg) }
func (l *recordingLogger) Warn(msg string, _ ...any)  { l.record("warn", msg) }
func (l *recordingLogger) Error(msg string, _ ...any) { l.record("error", msg) }
func (l *recordingLogger) Debug(msg string, _ ...any) { l.record("debug", msg) }
