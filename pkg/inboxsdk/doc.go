/*
Package inboxsdk is a Go client for the Whisper anonymous inbox API.

# SDKClient vs Session

SDKClient covers the public endpoints: sign-up, verification, username
checks, anonymous message submission and suggestions. Logging in returns a
Session, which carries the bearer token for the owner endpoints.

	client := inboxsdk.NewSDKClient("https://whisper.example.com")

	_, err := client.SignUp(ctx, inboxsdk.SignUpRequest{
		Username: "quietfox",
		Email:    "fox@example.com",
		Password: "hunter22",
	})

	// The code arrives by e-mail.
	err = client.Verify(ctx, "quietfox", code)

	session, err := client.Login(ctx, "fox@example.com", "hunter22")

	// Anyone may leave a message.
	err = client.SubmitMessage(ctx, "quietfox", "What are you reading lately?")

	// Only the owner can read them.
	messages, err := session.ListMessages(ctx)

# Errors

Non-2xx responses come back as *APIError holding the status code and the
server's message. IsStatus tests for a particular status:

	if inboxsdk.IsStatus(err, http.StatusForbidden) {
		// the recipient is not accepting messages
	}

Sessions do not refresh. Once ExpiresAt has passed, log in again.

A Session is safe for concurrent use.
*/
package inboxsdk
