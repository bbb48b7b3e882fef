// Copyright 2026 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package xmltree_test

import (
	"errors"
	"reflect"
	"strconv"
	"testing"

	"mellium.im/jabber/xmltree"
)

var tokenizeTests = [...]struct {
	in    string
	strip bool
	out   []xmltree.Token
	err   bool
}{
	0: {},
	1: {
		in: `<a/>`,
		out: []xmltree.Token{
			{Kind: xmltree.Complete, Name: "a"},
		},
	},
	2: {
		in: `<a x="1">text</a>`,
		out: []xmltree.Token{
			{Kind: xmltree.Complete, Name: "a", Attr: map[string]string{"x": "1"}, Value: "text"},
		},
	},
	3: {
		in:    `<a> <b>1</b> <b>2</b> </a>`,
		strip: true,
		out: []xmltree.Token{
			{Kind: xmltree.Open, Name: "a"},
			{Kind: xmltree.Complete, Name: "b", Value: "1"},
			{Kind: xmltree.Complete, Name: "b", Value: "2"},
			{Kind: xmltree.Close},
		},
	},
	4: {
		in: `<a><b/>x<!-- c -->y</a>`,
		out: []xmltree.Token{
			{Kind: xmltree.Open, Name: "a"},
			{Kind: xmltree.Complete, Name: "b"},
			{Kind: xmltree.CData, Value: "xy"},
			{Kind: xmltree.Close},
		},
	},
	5: {
		in: `<stream:stream xmlns:stream="http://etherx.jabber.org/streams" xml:lang="en"><stream:features/>`,
		out: []xmltree.Token{
			{Kind: xmltree.Open, Name: "stream:stream", Attr: map[string]string{
				"xmlns:stream": "http://etherx.jabber.org/streams",
				"xml:lang":     "en",
			}},
			{Kind: xmltree.Complete, Name: "stream:features"},
			{Kind: xmltree.Close},
		},
	},
	6: {
		in:  `<a></b>`,
		err: true,
	},
	7: {
		in:  `</a>`,
		err: true,
	},
	8: {
		in:  `<a><b`,
		err: true,
	},
	9: {
		in: `<root><stream:stream><iq/></root>`,
		out: []xmltree.Token{
			{Kind: xmltree.Open, Name: "root"},
			{Kind: xmltree.Open, Name: "stream:stream"},
			{Kind: xmltree.Complete, Name: "iq"},
			{Kind: xmltree.Close},
			{Kind: xmltree.Close},
		},
	},
	10: {
		in: `<a>  </a>`,
		out: []xmltree.Token{
			{Kind: xmltree.Complete, Name: "a", Value: "  "},
		},
	},
	11: {
		in:    `<a>  </a>`,
		strip: true,
		out: []xmltree.Token{
			{Kind: xmltree.Complete, Name: "a"},
		},
	},
}

func TestTokenize(t *testing.T) {
	for i, tc := range tokenizeTests {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			toks, err := xmltree.Tokenize([]byte(tc.in), tc.strip)
			switch {
			case tc.err && err == nil:
				t.Fatalf("expected error, got tokens %+v", toks)
			case !tc.err && err != nil:
				t.Fatalf("unexpected error: %v", err)
			case tc.err:
				var parseErr *xmltree.ParseError
				if !errors.As(err, &parseErr) {
					t.Fatalf("wrong error type: want=*xmltree.ParseError, got=%T", err)
				}
				if toks != nil {
					t.Errorf("expected no tokens with error, got %+v", toks)
				}
				return
			}
			if !reflect.DeepEqual(toks, tc.out) {
				t.Errorf("wrong tokens:\nwant=%+v,\n got=%+v", tc.out, toks)
			}
		})
	}
}

func TestParseSiblings(t *testing.T) {
	const in = `<query xmlns="jabber:iq:roster">
		<item jid="a@example.net" subscription="both"/>
		<item jid="b@example.net" subscription="to"/>
		<group>x</group>
		<item jid="c@example.net" subscription="none"/>
	</query>`
	top, err := xmltree.Parse([]byte(in))
	if err != nil {
		t.Fatalf("error parsing roster: %v", err)
	}
	query := top.Get("query")
	if len(query) != 1 {
		t.Fatalf("wrong number of queries: want=1, got=%d", len(query))
	}
	if ns := query[0].AttrValue("xmlns"); ns != "jabber:iq:roster" {
		t.Errorf("wrong namespace: want=jabber:iq:roster, got=%q", ns)
	}
	kids := query[0].Children()
	if names := kids.Names(); !reflect.DeepEqual(names, []string{"item", "group"}) {
		t.Errorf("wrong child names: %v", names)
	}
	items := kids.Get("item")
	if len(items) != 3 {
		t.Fatalf("wrong number of items: want=3, got=%d", len(items))
	}
	for i, want := range []string{"a@example.net", "b@example.net", "c@example.net"} {
		if got := items[i].AttrValue("jid"); got != want {
			t.Errorf("item %d: want=%q, got=%q", i, want, got)
		}
	}
	if txt := query[0].Child("group").Text(); txt != "x" {
		t.Errorf("wrong group text: want=x, got=%q", txt)
	}
}

func TestParseDeclaration(t *testing.T) {
	const body = `<iq type="result" id="bind_1"><bind xmlns="urn:ietf:params:xml:ns:xmpp-bind"><jid>me@example.net/r</jid></bind></iq>`
	frag, err := xmltree.Parse([]byte(body))
	if err != nil {
		t.Fatalf("error parsing fragment: %v", err)
	}
	doc, err := xmltree.Parse([]byte(`<?xml version="1.0"?>` + body))
	if err != nil {
		t.Fatalf("error parsing document: %v", err)
	}
	for _, top := range []*xmltree.Children{frag, doc} {
		if top.Len() != 1 {
			t.Fatalf("wrong number of top level names: want=1, got=%d", top.Len())
		}
		jid := top.Get("iq")[0].Path("bind", "jid")
		if jid == nil {
			t.Fatal("no jid found in bind result")
		}
		if jid.Text() != "me@example.net/r" {
			t.Errorf("wrong jid: want=me@example.net/r, got=%q", jid.Text())
		}
	}
}

func TestParseStreamStart(t *testing.T) {
	const in = `<?xml version='1.0'?><stream:stream xmlns='jabber:client' xmlns:stream='http://etherx.jabber.org/streams' id='abc' version='1.0'><stream:features><mechanisms xmlns='urn:ietf:params:xml:ns:xmpp-sasl'><mechanism>PLAIN</mechanism><mechanism>DIGEST-MD5</mechanism></mechanisms></stream:features>`
	top, err := xmltree.Parse([]byte(in))
	if err != nil {
		t.Fatalf("error parsing stream start: %v", err)
	}
	stream := top.Get("stream:stream")
	if len(stream) != 1 {
		t.Fatalf("stream start not found in %v", top.Names())
	}
	if id := stream[0].AttrValue("id"); id != "abc" {
		t.Errorf("wrong stream id: want=abc, got=%q", id)
	}
	mechs := stream[0].Path("stream:features", "mechanisms").Children().Get("mechanism")
	if len(mechs) != 2 || mechs[0].Text() != "PLAIN" || mechs[1].Text() != "DIGEST-MD5" {
		t.Errorf("wrong mechanisms: %+v", mechs)
	}
}

func TestParseMultiple(t *testing.T) {
	top, err := xmltree.Parse([]byte(`<message><body>1</body></message><presence/><message><body>2</body></message>`))
	if err != nil {
		t.Fatalf("error parsing: %v", err)
	}
	if names := top.Names(); !reflect.DeepEqual(names, []string{"message", "presence"}) {
		t.Fatalf("wrong names: %v", names)
	}
	msgs := top.Get("message")
	if len(msgs) != 2 {
		t.Fatalf("wrong number of messages: want=2, got=%d", len(msgs))
	}
	if b := msgs[1].Child("body").Text(); b != "2" {
		t.Errorf("wrong order: want second body=2, got=%q", b)
	}
	if _, ok := top.Get("presence")[0].Content.(*xmltree.Children); !ok {
		t.Errorf("empty element should hold empty children, got %T", top.Get("presence")[0].Content)
	}
}

func TestParseEmpty(t *testing.T) {
	for i, in := range []string{"", "   \n\t"} {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			top, err := xmltree.Parse([]byte(in))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if top.Len() != 0 {
				t.Errorf("expected empty result, got %v", top.Names())
			}
		})
	}
}

func TestParseError(t *testing.T) {
	_, err := xmltree.Parse([]byte(`<message><body>x</message>`))
	var parseErr *xmltree.ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestParseCharset(t *testing.T) {
	// "é" in ISO-8859-1
	in := []byte("<?xml version='1.0' encoding='ISO-8859-1'?><body>caf\xe9</body>")
	top, err := xmltree.Parse(in)
	if err != nil {
		t.Fatalf("error parsing latin1 document: %v", err)
	}
	if txt := top.Get("body")[0].Text(); txt != "café" {
		t.Errorf("wrong text: want=café, got=%q", txt)
	}
}

func TestNilAccessors(t *testing.T) {
	var n *xmltree.Node
	if n.Text() != "" || n.Child("a") != nil || n.Path("a", "b") != nil || n.AttrValue("a") != "" {
		t.Error("nil node accessors should return zero values")
	}
	if n.Children() == nil {
		t.Error("Children should never return nil")
	}
	var c *xmltree.Children
	if c.Len() != 0 || c.Get("a") != nil || c.Has("a") || c.Names() != nil {
		t.Error("nil children accessors should return zero values")
	}
}

var completeTests = [...]struct {
	in  string
	out bool
}{
	0:  {},
	1:  {in: `<iq/>`, out: true},
	2:  {in: `<iq>`, out: false},
	3:  {in: `<iq><bind/></iq>`, out: true},
	4:  {in: `<iq><bind/>`, out: false},
	5:  {in: `<message><body>a</bo`, out: false},
	6:  {in: `<stream:stream xmlns:stream='http://etherx.jabber.org/streams'>`, out: true},
	7:  {in: `<?xml version='1.0'?><stream:stream xmlns:stream='http://etherx.jabber.org/streams'><stream:features>`, out: false},
	8:  {in: `<?xml version='1.0'?><stream:stream xmlns:stream='http://etherx.jabber.org/streams'><stream:features/>`, out: true},
	9:  {in: `<presence/></stream:stream>`, out: true},
	10: {in: "<iq/>\n", out: true},
	11: {in: `<a/><b>`, out: false},
	12: {in: `<?xml version='1.0'?>`, out: false},
	13: {in: `<?xml version='1.0'?><!-- hello -->`, out: false},
	14: {in: `</stream:stream>`, out: true},
}

func TestIsComplete(t *testing.T) {
	for i, tc := range completeTests {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			if got := xmltree.IsComplete([]byte(tc.in)); got != tc.out {
				t.Errorf("wrong result for %q: want=%t, got=%t", tc.in, tc.out, got)
			}
		})
	}
}
