// Package openai implements the ai service contracts against any
// OpenAI-compatible chat API via langchaingo.
package openai
