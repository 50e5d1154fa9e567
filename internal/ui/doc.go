// Package ui implements the terminal progress view for anticipate using Bubbletea.
package ui
