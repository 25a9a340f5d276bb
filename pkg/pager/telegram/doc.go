// Package telegram connects pager.Paginator to telebot.
//
// Create one Dispatcher per bot; it owns the bot's OnCallback route and hands
// each button press to the paginator collecting on that message. Build a
// handle for a command with FromContext.
//
// Telegram has no embeds, so pages are rendered as HTML text (or a photo with
// an HTML caption when the page has an image) with the navigation buttons as
// an inline keyboard. Disabled buttons are left out of the keyboard.
package telegram
