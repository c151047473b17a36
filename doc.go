// Package airplay provides a Go client for showing photos and mirroring the
// desktop on AirPlay receivers (Apple TV and compatible devices) using the
// legacy AirPlay photo protocol over HTTP.
//
// # Overview
//
// The AirPlay photo protocol is a small HTTP/1.1 dialect spoken on TCP port
// 7000 of the receiver:
//
//   - PUT /photo carries a JPEG body and an X-Apple-Transition header
//   - POST /stop ends the current session
//   - Password protected receivers answer 401 with an HTTP digest challenge
//
// The receiver drops a photo after a short idle period, so the client keeps
// it on screen by re-sending the last frame in the background.
//
// # Authentication Flow
//
//  1. The first request is sent without credentials
//  2. On 401 the password is taken from the client or a PasswordProvider
//  3. The digest challenge is parsed and the request is retried once
//  4. Later requests reuse the stored challenge and skip the extra round trip
//
// A second 401 on the retry is reported as ErrAuthenticationFailed; a missing
// password is reported as ErrAuthenticationRequired.
//
// # Quick Start
//
//	client := airplay.NewClient("192.168.1.20", airplay.DefaultPort,
//	    airplay.WithPasswordProvider(airplay.NewConsolePasswordProvider()),
//	)
//	err := client.Photo(ctx, "holiday.jpg", airplay.TransitionDissolve)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Stop(context.Background())
//
// # Supported Features
//
//   - Digest authentication with preemptive reuse of the last challenge
//   - Photos with None, SlideLeft, SlideRight and Dissolve transitions
//   - Keep-alive re-sending of the displayed photo
//   - Desktop streaming from a ScreenCapturer at a fixed cadence
//   - Receiver discovery over multicast DNS
//   - Optional Prometheus metrics
package airplay
