// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package envfile

import (
	"strings"
)

// 🏷️ Reason explains why a setting was classified as a credential
type Reason int

const (
	ReasonNone          Reason = iota
	ReasonKeyword              // Key contains a credential keyword
	ReasonInsecureValue        // Value is a known placeholder
)

// String returns a string representation of Reason
func (r Reason) String() string {
	switch r {
	case ReasonKeyword:
		return "keyword"
	case ReasonInsecureValue:
		return "insecure value"
	default:
		return "none"
	}
}

var (
	DefaultKeywords       = []string{"PASSWORD", "PASSWD", "PWD"}
	DefaultInsecureValues = []string{"changeme", "password", "admin", "secret", "default"}
)

// 🕵️ Classifier decides which settings hold credentials.
//
// This is a heuristic: a key is a credential when it contains one of
// Keywords, or when its value is exactly one of InsecureValues. Both checks
// are case-insensitive. Settings that match neither are kept even when they
// hold real secrets.
type Classifier struct {
	Keywords       []string
	InsecureValues []string
}

// 🏭 DefaultClassifier returns the classifier with the built-in lists
func DefaultClassifier() *Classifier {
	return NewClassifier(DefaultKeywords, DefaultInsecureValues)
}

// 🏭 NewClassifier creates a classifier, normalizing case once
func NewClassifier(keywords, insecureValues []string) *Classifier {
	c := &Classifier{
		Keywords:       make([]string, 0, len(keywords)),
		InsecureValues: make([]string, 0, len(insecureValues)),
	}
	for _, k := range keywords {
		if k = strings.TrimSpace(k); k != "" {
			c.Keywords = append(c.Keywords, strings.ToUpper(k))
		}
	}
	for _, v := range insecureValues {
		if v = strings.TrimSpace(v); v != "" {
			c.InsecureValues = append(c.InsecureValues, strings.ToLower(v))
		}
	}
	return c
}

// Classify returns why key/value is a credential, or ReasonNone
func (c *Classifier) Classify(key, value string) Reason {
	upperKey := strings.ToUpper(key)
	for _, keyword := range c.Keywords {
		if strings.Contains(upperKey, strings.ToUpper(keyword)) {
			return ReasonKeyword
		}
	}

	lowerValue := strings.ToLower(value)
	for _, insecure := range c.InsecureValues {
		if lowerValue == strings.ToLower(insecure) {
			return ReasonInsecureValue
		}
	}

	return ReasonNone
}

// IsCredential reports whether key/value should get a generated secret
func (c *Classifier) IsCredential(key, value string) bool {
	return c.Classify(key, value) != ReasonNone
}
