// Package message splits an email message into its parsed header and its body.
// The body is not looked at: MIME structure and transfer encodings are left to
// the caller.
//
//	msg, err := message.Parse(in)
//	if err != nil {
//	  panic(err)
//	}
//
//	fmt.Println(msg.Subject)
//	body, err := io.ReadAll(msg)
package message
