package header_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/go-rfc5322/message/header"
	"github.com/zostay/go-rfc5322/message/header/encoding"
	"github.com/zostay/go-rfc5322/message/header/field"
)

func crlf(s string) string {
	return strings.ReplaceAll(s, "\n", "\r\n")
}

var emailMsg = crlf(`Delivered-To: sterling@example.com
Received: by 1.6.2.1 with SMTP id asdfasdfasdfasd;
        Fri, 30 Jan 2015 19:23:13 -0800 (PST)
X-Received: by 1.2.8.2 with SMTP id asdfasdfasdfasd.5.3;
        Fri, 30 Jan 2015 19:23:12 -0800 (PST)
Return-Path: <bounce-mc.us2_6.1-sterling=example.com@mail7.example.com>
Received: from mail7.example.com (mail7.example.com. [1.2.1.7])
        by mx.example.com with ESMTP id asdfasdfasdfasdf.1.2.0.3.1.2.1
        for <sterling@example.com>;
        Fri, 30 Jan 2015 19:23:12 -0800 (PST)
Received-SPF: pass (example.com: domain of bounce-mc.us2_6.1-sterling=example.com@mail7.example.com designates 1.2.1.7 as permitted sender) client-ip=1.2.1.7;
Authentication-Results: mx.example.com;
       spf=pass (example.com: domain of bounce-mc.us2_6.1-sterling=example.com@mail7.example.com designates 1.2.1.7 as permitted sender) smtp.mail=bounce-mc.us2_6.1-sterling=example.com@mail7.example.com;
       dkim=pass header.i=@mail7.example.com
DKIM-Signature: v=1; a=rsa-sha1; c=relaxed/relaxed; s=k1; d=mail7.example.com;
 h=Subject:From:Reply-To:To:Date:Message-ID:List-ID:List-Unsubscribe:Sender:Content-Type:MIME-Version; i=devsupport=3Dexample.com@mail7.example.com;
 bh=asdfasdfasdfasdfasdfasdfasdf;
 b=asdfasdfasdfasdfasdfasdfasdfasdfasdfasdfasdfasdfasdfasdfasdfasdfasdfasdfasdf
   asdfasdfasdfasdfasdfasdfasdfasdfasdfasdfasdfasdfasdfasdfasdfasdfasdfasdfasdf
   asdfasdfasdfasdfasdf
DomainKey-Signature: a=rsa-sha1; c=nofws; q=dns; s=k1; d=mail7.example.com;
 b=asdfasdfasdfasdfasdfasdfasdfasdfasdfasdfasdfasdfasdfasdfasdfasdfasdfasdfasdf
   asdfasfdasdfasdfasdfasdfasdfasdfasdfasdfasdfasdfasdfasdfasdfasdfasdfasdfasdf
   asdfasdfasdfasdfasdf;
Received: from (127.0.0.1) by mail7.example.com id asdfasdfasdf for <sterling@example.com>; Sat, 31 Jan 2015 03:23:09 +0000 (envelope-from <bounce-mc.us2_6.1-sterling=example.com@mail7.example.com>)
Subject: =?utf-8?Q?Emulator=20Behind=20The=20Scenes=2C=20Debugging=20Guides=2C=20New=20Meetup=20Groups=20and=20more=21?=
From: =?utf-8?Q?Example?= <devsupport@example.com>
Reply-To: =?utf-8?Q?Example?= <devsupport@example.com>
To: <sterling@example.com>
Date: Sat, 31 Jan 2015 03:23:09 +0000
Message-ID: <asdfasdfasdfasdfasdfasdfasdfasdfasd.2@mail7.example.com>
X-Mailer: MailChimp Mailer - **asdfasdfasdfasdfasdfasd**
X-Campaign: mailchimpasdfasdfasdfasdfasdfasdfa.asdfasdfas
X-campaignid: mailchimpasfdasdfasdfasdfasdfasdfa.asdfasdfas
X-Report-Abuse: Please report abuse for this campaign here: http://www.example.com/abuse/abuse.phtml?u=asdfasdfasdfasdfasdfasdfa&id=asdfasdfas&e=asdfasdfas
X-MC-User: asdfasdfasdfasdfasdfasdfa
X-Feedback-ID: 6:6.1:us2:mc
List-ID: asdfasdfasdfasdfasdfasdfasd list <asdfasdfasdfasdfasdfasdfa.7.list-id.example.com>
X-Accounttype: pd
List-Unsubscribe: <mailto:unsubscribe-asdfasdfasdfasdfasdfasdfa-asdfasdfas-asdfasdfas@mailin1.example.com?subject=unsubscribe>, <http://example.us2.example.com/unsubscribe?u=asdfasdfasdfasdfasdfasdfa&id=asdfasdfas&e=asdfasdfas&c=asdfasdfas>
Sender: "Example" <devsupport=example.com@mail7.example.com>
x-mcda: FALSE
Content-Type: multipart/alternative; boundary="_----------=_MCPart_433295335"
MIME-Version: 1.0
Keywords:

`)

func mb(local string, labels ...string) field.Mailbox {
	return field.Mailbox{
		Local:  field.LocalPart{{Text: local}},
		Domain: field.Domain{Labels: labels},
	}
}

func TestParse_Realistic(t *testing.T) {
	t.Parallel()

	h, err := header.Parse([]byte(emailMsg))
	require.NoError(t, err)

	assert.Equal(t, 29, h.Len())

	require.NotNil(t, h.Subject)
	assert.Equal(t, "Emulator Behind The Scenes, Debugging Guides, New Meetup Groups and more!", h.Subject.String())

	require.Len(t, h.From, 1)
	assert.Equal(t, "Example", h.From[0].Name.String())
	assert.Equal(t, "devsupport@example.com", h.From[0].Mailbox.String())

	require.Len(t, h.To, 1)
	assert.Equal(t, field.Person{Mailbox: mb("sterling", "example", "com")}, h.To[0])

	require.NotNil(t, h.Sender)
	assert.Equal(t, field.Phrase{field.Word{Text: "Example", Quoted: true}}, h.Sender.Name)

	require.NotNil(t, h.Date)
	assert.Equal(t, time.Date(2015, time.January, 31, 3, 23, 9, 0, time.UTC), h.Date.Time().UTC())

	require.NotNil(t, h.MessageID)
	assert.Equal(t, "<asdfasdfasdfasdfasdfasdfasdfasdfasd.2@mail7.example.com>", h.MessageID.String())

	assert.Empty(t, h.Keywords)
	assert.Empty(t, h.Unsafe)
	assert.Empty(t, h.Skipped)

	require.Len(t, h.Traces, 3)
	assert.Nil(t, h.Traces[0].ReturnPath)
	require.NotNil(t, h.Traces[1].ReturnPath)
	require.NotNil(t, h.Traces[1].ReturnPath.Path)
	assert.Equal(t, "mail7.example.com", h.Traces[1].ReturnPath.Path.Domain.String())
	require.Len(t, h.Traces[1].Received, 1)
	assert.Equal(t, field.ReceivedAddr{Mailbox: mb("sterling", "example", "com"), Angle: true},
		h.Traces[1].Received[0].Tokens[len(h.Traces[1].Received[0].Tokens)-1])
	assert.Nil(t, h.Traces[2].ReturnPath)

	assert.Len(t, h.Extensions, 18)
	assert.Equal(t, "FALSE", h.Extension("X-MCDA")[0].String())
	assert.Equal(t, "x-mcda", h.Extensions[15].Name)
	assert.Len(t, h.Extension("X-Campaign"), 1)
	assert.Len(t, h.Extension("X-campaignid"), 1)
	assert.Nil(t, h.Extension("X-Missing"))
}

func TestParse_Properties(t *testing.T) {
	t.Parallel()

	h, err := header.Parse([]byte("Subject: hello\r\n"))
	require.NoError(t, err)
	require.NotNil(t, h.Subject)
	assert.Equal(t, field.Unstructured{field.Text("hello")}, *h.Subject)

	h2, err := header.Parse([]byte(h.String()))
	require.NoError(t, err)
	assert.Equal(t, h.Subject, h2.Subject)

	h, err = header.Parse([]byte("From: Name <a@b.com>\r\n"))
	require.NoError(t, err)
	assert.Equal(t, []field.Person{{
		Name:    field.Phrase{field.Word{Text: "Name"}},
		Mailbox: mb("a", "b", "com"),
	}}, h.From)

	h, err = header.Parse([]byte("From: a@b.com\r\n"))
	require.NoError(t, err)
	assert.Equal(t, []field.Person{{Mailbox: mb("a", "b", "com")}}, h.From)

	_, err = header.Parse([]byte("From: <a@b.com\r\n"))
	assert.ErrorIs(t, err, header.ErrNotHeader)

	h, err = header.Parse([]byte("Date: Fri, 21 Nov 1997 09:55:06 -0600\r\n"))
	require.NoError(t, err)
	require.NotNil(t, h.Date)
	require.NotNil(t, h.Date.Weekday)
	assert.Equal(t, time.Friday, *h.Date.Weekday)
	assert.Equal(t, 21, h.Date.Day)
	assert.Equal(t, time.November, h.Date.Month)
	assert.Equal(t, 1997, h.Date.Year)
	assert.Equal(t, 9, h.Date.Hour)
	assert.Equal(t, 55, h.Date.Minute)
	require.NotNil(t, h.Date.Second)
	assert.Equal(t, 6, *h.Date.Second)
	assert.Equal(t, field.Zone{Kind: field.ZoneOffset, Offset: -600}, h.Date.Zone)

	h, err = header.Parse([]byte("Subject: =?utf-8?Q?a?= =?utf-8?Q?b?=\r\n"))
	require.NoError(t, err)
	require.NotNil(t, h.Subject)
	assert.Len(t, *h.Subject, 2)
	assert.Equal(t, "ab", h.Subject.String())

	h, err = header.Parse([]byte("Subject: =?utf-8?Q?a?= plain\r\n"))
	require.NoError(t, err)
	require.NotNil(t, h.Subject)
	assert.Len(t, *h.Subject, 3)
	assert.Equal(t, field.WSP{}, (*h.Subject)[1])

	h, err = header.Parse([]byte("X-Custom: v1\r\nX-Custom: v2\r\n"))
	require.NoError(t, err)
	assert.Equal(t, []header.Extension{{
		Name: "X-Custom",
		Values: []field.Unstructured{
			{field.Text("v1")},
			{field.Text("v2")},
		},
	}}, h.Extensions)
}

func TestParse_Traces(t *testing.T) {
	t.Parallel()

	by := func(host string) field.Received {
		return field.Received{Tokens: []field.ReceivedToken{
			field.ReceivedDomain{Domain: field.Domain{Labels: []string{"by"}}},
			field.ReceivedDomain{Domain: field.Domain{Labels: []string{host}}},
		}}
	}
	from := field.From{Mailboxes: []field.Person{{Mailbox: mb("f", "x")}}}

	h, err := header.Parse([]byte(crlf(`Return-Path: <p@x>
Received: by a
Received: by b
From: f@x
`)))
	require.NoError(t, err)

	p := mb("p", "x")
	assert.Equal(t, []field.Field{
		field.Trace{
			ReturnPath: &field.ReturnPath{Path: &p},
			Received:   []field.Received{by("a"), by("b")},
		},
		from,
	}, h.Fields())
	assert.Len(t, h.Traces, 1)

	h, err = header.Parse([]byte(crlf(`Received: by a
From: f@x
Received: by b
Return-Path: <>
`)))
	require.NoError(t, err)
	assert.Equal(t, []field.Field{
		field.Trace{Received: []field.Received{by("a")}},
		from,
		field.Trace{Received: []field.Received{by("b")}},
		field.ReturnPath{},
	}, h.Fields())
	assert.Len(t, h.Traces, 2)

	// a Return-Path without Received stays where it is
	h, err = header.Parse([]byte(crlf(`Return-Path: <p@x>
From: f@x
`)))
	require.NoError(t, err)
	assert.Equal(t, []field.Field{field.ReturnPath{Path: &p}, from}, h.Fields())
	assert.Empty(t, h.Traces)
}

func TestParse_Resents(t *testing.T) {
	t.Parallel()

	h, err := header.Parse([]byte(crlf(`Resent-From: a@x
Resent-Date: 1 Jan 2000 00:00 +0000
Resent-From: b@x
Resent-To: c@x
Subject: hi
Resent-Message-ID: <1@x>
`)))
	require.NoError(t, err)

	require.Len(t, h.Resents, 3)
	assert.Len(t, h.Resents[0].Fields, 2)
	assert.Equal(t, []field.Person{{Mailbox: mb("a", "x")}}, h.Resents[0].From())
	assert.NotNil(t, h.Resents[0].Date())
	assert.Equal(t, []field.Person{{Mailbox: mb("b", "x")}}, h.Resents[1].From())
	assert.Len(t, h.Resents[1].To(), 1)
	assert.Nil(t, h.Resents[1].Date())
	require.NotNil(t, h.Resents[2].MessageID())
	assert.Equal(t, "<1@x>", h.Resents[2].MessageID().String())

	assert.Equal(t, 4, h.Len())
	assert.IsType(t, field.Subject{}, h.Fields()[2])
}

func TestParse_Slots(t *testing.T) {
	t.Parallel()

	h, err := header.Parse([]byte(crlf(`Subject: first
To: a@x, b@x
X-Thing: one
Cc: c@x
To: d@x
x-thing: two
Subject: second
Comments: one
Comments: two
Keywords: k1, k2
Keywords: k3
not a field
Subject: caf` + "\xe9" + `
`)))
	require.NoError(t, err)

	require.NotNil(t, h.Subject)
	assert.Equal(t, "second", h.Subject.String())
	assert.Equal(t, []string{" caf\xe9"}, h.UnsafeValues("subject"))
	assert.Equal(t, []string{"not a field"}, h.Skipped)

	to := make([]string, len(h.To))
	for i, a := range h.To {
		to[i] = a.(field.Person).Mailbox.String()
	}
	assert.Equal(t, []string{"a@x", "b@x", "d@x"}, to)
	assert.Len(t, h.Cc, 1)

	require.Len(t, h.Comments, 2)
	assert.Equal(t, "one", h.Comments[0].String())
	assert.Equal(t, "two", h.Comments[1].String())
	assert.Len(t, h.Keywords, 3)

	require.Len(t, h.Extensions, 1)
	assert.Equal(t, "X-Thing", h.Extensions[0].Name)
	assert.Len(t, h.Extension("X-THING"), 2)
}

func TestParse_EightBit(t *testing.T) {
	t.Parallel()

	// 8-bit bytes in a quoted display name are taken as written
	h, err := header.Parse([]byte("From: \"caf\xe9\" <a@x>\r\nSubject: caf\xe9\r\n"))
	require.NoError(t, err)
	require.Len(t, h.From, 1)
	assert.Equal(t, "a@x", h.From[0].Mailbox.String())
	assert.Empty(t, h.UnsafeValues("from"))

	// but unstructured text must be UTF-8
	assert.Nil(t, h.Subject)
	assert.Equal(t, []string{" caf\xe9"}, h.UnsafeValues("subject"))
}

func TestParse_LastWins(t *testing.T) {
	t.Parallel()

	h, err := header.Parse([]byte("Subject: first\r\nSubject: second\r\n"))
	require.NoError(t, err)
	require.NotNil(t, h.Subject)
	assert.Equal(t, "second", h.Subject.String())
}

func TestParse_Empty(t *testing.T) {
	t.Parallel()

	h, err := header.Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, h.Len())
	assert.Equal(t, "\r\n", h.String())
}

func TestParse_WithWordDecoder(t *testing.T) {
	t.Parallel()

	dec := func(charset string, enc encoding.Encoding, text string) encoding.Result {
		return encoding.Result{Text: strings.ToUpper(text)}
	}

	h, err := header.Parse([]byte("Subject: =?x-unknown?Q?abc?=\r\n"), header.WithWordDecoder(dec))
	require.NoError(t, err)
	require.NotNil(t, h.Subject)
	assert.Equal(t, "ABC", h.Subject.String())
}

func TestHeader_WriteTo(t *testing.T) {
	t.Parallel()

	h, err := header.Parse([]byte(emailMsg))
	require.NoError(t, err)

	h.SetFoldEncoding(field.DoNotFoldEncoding)
	assert.Equal(t, field.DoNotFoldEncoding, h.GetFoldEncoding())

	buf := &bytes.Buffer{}
	n, err := h.WriteTo(buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)
	assert.True(t, strings.HasSuffix(buf.String(), "\r\n\r\n"))

	again, err := header.Parse(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, h.Fields(), again.Fields())

	// folding at the default length keeps every value
	buf.Reset()
	h.SetFoldEncoding(nil)
	_, err = h.WriteTo(buf)
	require.NoError(t, err)

	folded, err := header.Parse(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, h.From, folded.From)
	assert.Equal(t, h.Traces, folded.Traces)
	assert.Equal(t, h.Subject.String(), folded.Subject.String())
}
