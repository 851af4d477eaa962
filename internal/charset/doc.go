// Package charset resolves text codec names and transcodes whole subtitle
// files between those codecs and UTF-8.
//
// Names are matched against the IANA registry first and the WHATWG label
// set second, after folding common spellings such as "latin-1" or "utf_8".
package charset
