package wirecodec_test

import (
	"errors"
	"fmt"
	"log"
	"reflect"

	"github.com/oy3o/wirecodec"
)

type Tversion struct {
	Size    uint32
	Typ     uint8
	Tag     uint16
	Msize   uint32
	Version string
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

// ExampleMarshal encodes a message with a null-terminated string.
func ExampleMarshal() {
	msg := Tversion{Size: 47, Typ: 9, Tag: 15, Msize: 99, Version: "muffin"}

	data, err := wirecodec.Marshal(msg)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("% x\n", data)

	var got Tversion
	if err := wirecodec.Unmarshal(data, &got); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("%+v\n", got)

	// Output:
	// 2f 00 00 00 09 0f 00 63 00 00 00 6d 75 66 66 69 6e 00
	// {Size:47 Typ:9 Tag:15 Msize:99 Version:muffin}
}

// ExampleDecode reads a directory listing framed by an element count.
func ExampleDecode() {
	data := []byte{
		0x30, 0, 0, 0, 41, 1, 0,
		2,
		37, 0, 0, 0, 0, 0, 0, 0, 2, 9, 0, 'b', 'l', 'u', 'e', 'b', 'e', 'r', 'r', 'y',
		73, 0, 0, 0, 0, 0, 0, 0, 9, 6, 0, 'm', 'u', 'f', 'f', 'i', 'n',
	}

	msg, err := wirecodec.Decode[Rreaddir](data)
	if err != nil {
		log.Fatal(err)
	}
	for _, d := range msg.Data {
		fmt.Printf("%d %d %s\n", d.Offset, d.Typ, d.Name)
	}

	// Output:
	// 37 2 blueberry
	// 73 9 muffin
}

// ExampleLenient shows the trailing-bytes policy.
func ExampleLenient() {
	data := []byte{47, 0, 0, 0, 9, 15, 0, 99, 0, 0, 0, 'm', 'u', 'f', 'f', 'i', 'n', 0, 0xff}

	_, err := wirecodec.Decode[Tversion](data)
	fmt.Println(errors.Is(err, wirecodec.ErrTrailingBytes))

	msg, err := wirecodec.Decode[Tversion](data, wirecodec.Lenient())
	fmt.Println(msg.Version, err)

	// Output:
	// true
	// muffin <nil>
}

// ExampleNewSchema frames the same struct differently without touching its tags.
func ExampleNewSchema() {
	s, err := wirecodec.NewSchema(reflect.TypeOf(Tversion{}),
		wirecodec.Field{Name: "Tag", Index: 2, Codec: wirecodec.Uint{Width: wirecodec.W16}},
		wirecodec.Field{Name: "Version", Index: 4, Codec: wirecodec.PrefixString{Width: wirecodec.W8}},
	)
	if err != nil {
		log.Fatal(err)
	}

	data, err := s.Marshal(Tversion{Tag: 15, Version: "9P2000"}, wirecodec.WithByteOrder(wirecodec.BE))
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("% x\n", data)

	// Output:
	// 00 0f 06 39 50 32 30 30 30
}
