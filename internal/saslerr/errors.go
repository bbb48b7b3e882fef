// Copyright 2016 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

// Package saslerr provides error conditions for the XMPP profile of SASL as
// defined by RFC 6120 §6.5.
package saslerr // import "mellium.im/jabber/internal/saslerr"

import (
	"golang.org/x/text/language"

	"mellium.im/jabber/xmltree"
)

// Condition is a SASL error condition that can be encapsulated by a
// <failure/> element.
type Condition string

func (c Condition) String() string {
	return string(c)
}

// Standard SASL error conditions.
const (
	None                 Condition = ""
	Aborted              Condition = "aborted"
	AccountDisabled      Condition = "account-disabled"
	CredentialsExpired   Condition = "credentials-expired"
	EncryptionRequired   Condition = "encryption-required"
	IncorrectEncoding    Condition = "incorrect-encoding"
	InvalidAuthzID       Condition = "invalid-authzid"
	InvalidMechanism     Condition = "invalid-mechanism"
	MalformedRequest     Condition = "malformed-request"
	MechanismTooWeak     Condition = "mechanism-too-weak"
	NotAuthorized        Condition = "not-authorized"
	TemporaryAuthFailure Condition = "temporary-auth-failure"
)

// Failure is a SASL error reported by the server.
type Failure struct {
	Condition Condition
	Lang      language.Tag
	Text      string
}

// Error satisfies the error interface for a Failure. It returns the text string
// if set, or the condition otherwise.
func (f Failure) Error() string {
	if f.Text != "" {
		return f.Text
	}
	return string(f.Condition)
}

// FromNode reads a <failure/> element.
// The first child other than <text/> is taken as the condition.
// If several text elements are present the one whose xml:lang most closely
// matches lang is selected.
func FromNode(n *xmltree.Node, lang language.Tag) Failure {
	f := Failure{Lang: lang}
	kids := n.Children()

	for _, name := range kids.Names() {
		if name != "text" {
			f.Condition = Condition(name)
			break
		}
	}

	texts := kids.Get("text")
	if len(texts) == 0 {
		return f
	}
	tags := make([]language.Tag, 0, len(texts))
	data := make(map[language.Tag]string, len(texts))
	for _, text := range texts {
		// Unparsable tags are treated as undetermined.
		tag, err := language.Parse(text.AttrValue("xml:lang"))
		if err != nil {
			tag = language.Und
		}
		if _, ok := data[tag]; ok {
			continue
		}
		tags = append(tags, tag)
		data[tag] = text.Text()
	}
	_, idx, _ := language.NewMatcher(tags).Match(lang)
	f.Lang = tags[idx]
	f.Text = data[tags[idx]]
	return f
}
