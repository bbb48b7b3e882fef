// Copyright 2026 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package jabber

import (
	"strconv"
	"strings"

	"mellium.im/jabber/internal/attr"
	"mellium.im/jabber/internal/ns"
	"mellium.im/jabber/stanza"
	"mellium.im/jabber/xmltree"
)

// QueryKind is the kind of request an IQ reply answers.
type QueryKind uint8

// A list of query kinds.
const (
	QueryUnknown QueryKind = iota
	QueryBind
	QuerySession
	QueryRegister
	QueryRegistered
	QueryUnregister
	QueryRoster
	QueryPush
)

func (k QueryKind) String() string {
	switch k {
	case QueryUnknown:
		return "unknown"
	case QueryBind:
		return "bind"
	case QuerySession:
		return "session"
	case QueryRegister:
		return "register"
	case QueryRegistered:
		return "registered"
	case QueryUnregister:
		return "unregister"
	case QueryRoster:
		return "roster"
	case QueryPush:
		return "push"
	}
	return "QueryKind(" + strconv.Itoa(int(k)) + ")"
}

// prefix is the id prefix of requests of this kind.
func (k QueryKind) prefix() string {
	switch k {
	case QueryBind:
		return "bind"
	case QuerySession:
		return "sess"
	case QueryRegister, QueryRegistered:
		return "reg"
	case QueryUnregister:
		return "unreg"
	case QueryRoster:
		return "roster"
	}
	return "push"
}

// queryTable tracks the ids of requests waiting for a reply.
// Entries are removed when the reply arrives and never expire.
type queryTable struct {
	ids     attr.Sequence
	pending map[string]QueryKind
}

// add allocates an id for a request of kind k.
func (q *queryTable) add(k QueryKind) string {
	if q.pending == nil {
		q.pending = make(map[string]QueryKind)
	}
	id := q.ids.Next(k.prefix())
	q.pending[id] = k
	return id
}

func (q *queryTable) take(id string) (QueryKind, bool) {
	k, ok := q.pending[id]
	if ok {
		delete(q.pending, id)
	}
	return k, ok
}

func (q *queryTable) reset() {
	q.ids.Reset()
	q.pending = nil
}

// classify determines which request an incoming IQ answers, or whether it is a
// roster push from the server.
func (q *queryTable) classify(iq *xmltree.Node) QueryKind {
	id := iq.AttrValue("id")
	if k, ok := q.take(id); ok {
		return k
	}
	if stanza.IQType(iq.AttrValue("type")) == stanza.SetIQ {
		if query := iq.Child("query"); query != nil && query.AttrValue("xmlns") == ns.Roster {
			return QueryPush
		}
	}
	if strings.HasPrefix(id, "push") {
		return QueryPush
	}
	return QueryUnknown
}
