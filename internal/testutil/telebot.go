package testutil

import (
	tele "gopkg.in/telebot.v3"
)

// FakeContext is a tele.Context that records replies. Only the methods the
// handlers use are implemented; anything else panics on the nil embed.
type FakeContext struct {
	tele.Context

	User          *tele.User
	MessageText   string
	CallbackQuery *tele.Callback
	EditErr       error
	Sent          []interface{}
	SentOpts      [][]interface{}
	Edited        []interface{}
	Texts         []string

	Responses []*tele.CallbackResponse
	Responded int
}

var _ tele.Context = (*FakeContext)(nil)

// NewFakeMessage creates a context for a text message from userID
func NewFakeMessage(userID int64, text string) *FakeContext {
	return &FakeContext{
		User:        &tele.User{ID: userID, Username: "tester"},
		MessageText: text,
	}
}

// NewFakeCallback creates a context for an inline button press
func NewFakeCallback(userID int64, unique string) *FakeContext {
	return &FakeContext{
		User:          &tele.User{ID: userID, Username: "tester"},
		CallbackQuery: &tele.Callback{ID: "cb-1", Unique: unique},
	}
}

func (c *FakeContext) Sender() *tele.User       { return c.User }
func (c *FakeContext) Text() string             { return c.MessageText }
func (c *FakeContext) Callback() *tele.Callback { return c.CallbackQuery }

func (c *FakeContext) Send(what interface{}, opts ...interface{}) error {
	c.Sent = append(c.Sent, what)
	c.SentOpts = append(c.SentOpts, opts)
	c.record(what)
	return nil
}

func (c *FakeContext) Edit(what interface{}, opts ...interface{}) error {
	if c.EditErr != nil {
		return c.EditErr
	}
	c.Edited = append(c.Edited, what)
	c.record(what)
	return nil
}

func (c *FakeContext) Respond(resp ...*tele.CallbackResponse) error {
	c.Responded++
	c.Responses = append(c.Responses, resp...)
	return nil
}

func (c *FakeContext) record(what interface{}) {
	if s, ok := what.(string); ok {
		c.Texts = append(c.Texts, s)
	}
}

// LastText returns the last text sent or edited in
func (c *FakeContext) LastText() string {
	if len(c.Texts) == 0 {
		return ""
	}
	return c.Texts[len(c.Texts)-1]
}
