/*
Package config loads envgen settings from an optional config file.

	            +-------------+
	            |   Config    |
	            | (Settings)  |
	            +------+------+
	                   |
	      +------------+------------+
	      |            |            |
	+-----+----+ +-----+----+ +-----+----+
	|   YAML   | |   JSON   | |   HCL    |
	|  Parser  | |  Parser  | |  Parser  |
	+----------+ +----------+ +----------+

🎯 Purpose:
- Picks a parser by file extension
- Starts from Default() so files only list what they change
- Validates names, secret settings and file mode
- Builds the classifier and secret generator used by operations

🔍 Example (.envgen.yaml):

	template_name: .env.example
	output_name: .env
	length: 32
	keywords: [PASSWORD, PASSWD, PWD, TOKEN]
	exclude:
	  - "testdata/**"

🔍 Example (envgen.hcl):

	output_name = ".env.local"
	length      = 32
	file_mode   = env.ENVGEN_FILE_MODE
*/
package config
