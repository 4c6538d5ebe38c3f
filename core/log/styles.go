// Copyright (C) 2017 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package log

var (
	// Raw prints only the text of the message.
	Raw = Style{Name: "raw"}

	// Brief prints the short severity and the text.
	Brief = Style{Name: "brief", Severity: SeverityShort}

	// Normal prints the timestamp, short severity, trace, tag, process and
	// text.
	Normal = Style{
		Name:      "normal",
		Timestamp: true,
		Tag:       true,
		Trace:     true,
		Process:   true,
		Severity:  SeverityShort,
	}

	// Detailed is Normal with the long severity and the bound values, one
	// per line.
	Detailed = Style{
		Name:      "detailed",
		Timestamp: true,
		Tag:       true,
		Trace:     true,
		Process:   true,
		Severity:  SeverityLong,
		Values:    ValuesMultiLine,
	}

	// Styles lists the styles selectable by name.
	Styles = []Style{Raw, Brief, Normal, Detailed}
)
