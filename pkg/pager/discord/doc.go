// Package discord connects pager.Paginator to discordgo.
//
// Wrap the triggering event with FromInteraction (slash commands, buttons)
// or FromMessage (text commands) and pass the handle to pager.New. Clicks on
// the sent message are collected through Session.AddHandler.
package discord
