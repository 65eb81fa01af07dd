// Package notifier posts newly played league results.
//
// After every refresh the dashboard passes the games that turned from open to
// played to a Notifier. DryRunNotifier prints the messages; TwitterNotifier
// posts them with OAuth1 credentials from the environment and waits between
// posts to stay under rate limits. TelegramNotifier sends one digest message
// per refresh through the Bot API.
package notifier
