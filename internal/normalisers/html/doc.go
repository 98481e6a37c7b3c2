// Package html normalises HTML uploads. Block elements end a paragraph,
// b and strong produce bold spans, and script and style content is
// dropped. Entities are decoded by the tokenizer.
package html
