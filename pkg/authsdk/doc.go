/*
Package authsdk is a Go client for the sign-in service.

# Client

Client wraps the JSON endpoints under /api/auth. It owns a cookie jar, so the
session cookie set by a successful sign-in is sent on every later call:

	client := authsdk.NewClient("https://signin.example.com")

	resp, err := client.Login(ctx, "jane@example.com", password, true)
	if err != nil {
		// *authsdk.APIError carries the status code and server message
		return err
	}
	if !resp.RequiresEmailTwoFactor {
		fmt.Println("signed in as", resp.User.UserName)
	}

Every non-2xx response is returned as an *APIError whose Message is the
human-readable text the server sent.

# Email challenges

When Login reports RequiresEmailTwoFactor, the account was emailed a six-digit
code. Challenge models the screen that collects it:

	ch, err := authsdk.NewChallenge(client, resp.Email, true)
	if errors.Is(err, authsdk.ErrNoChallenge) {
		// back to the login form
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel() // stops the countdown
	go ch.Run(ctx)

	// Feed keystrokes; the sixth digit submits automatically.
	signedIn, err := ch.Enter(ctx, "123456")

The countdown starts at five minutes. Resend is offered once a minute has
passed (CanResend) and restarts the countdown. A failed verify clears the
input but leaves the countdown running.
*/
package authsdk
