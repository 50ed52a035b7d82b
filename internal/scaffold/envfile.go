package scaffold

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/joho/godotenv"
)

// Keys written to a project's .env file.
const (
	EnvAccountSID = "ACCOUNT_SID"
	EnvAuthToken  = "AUTH_TOKEN"
)

// renderEnv returns the .env contents for the given credentials. Empty
// values are written as empty strings so the keys are always present.
func renderEnv(accountSID, authToken string) []byte {
	var buf bytes.Buffer
	writeEnvLine(&buf, EnvAccountSID, accountSID)
	writeEnvLine(&buf, EnvAuthToken, authToken)
	return buf.Bytes()
}

func writeEnvLine(buf *bytes.Buffer, key, value string) {
	fmt.Fprintf(buf, "%s=\"%s\"\n", key, envEscaper.Replace(value))
}

// mergeEnv appends the variables of incoming that are not already defined
// in existing. Existing lines, including credentials, are kept verbatim.
// It returns the merged contents and the names of the added keys.
func mergeEnv(existing, incoming []byte) ([]byte, []string, error) {
	current, err := godotenv.UnmarshalBytes(existing)
	if err != nil {
		return nil, nil, fmt.Errorf("parsing project .env: %w", err)
	}
	extra, err := godotenv.UnmarshalBytes(incoming)
	if err != nil {
		return nil, nil, fmt.Errorf("parsing template .env: %w", err)
	}

	additions := map[string]string{}
	for k, v := range extra {
		if _, ok := current[k]; !ok {
			additions[k] = v
		}
	}
	if len(additions) == 0 {
		return existing, nil, nil
	}

	keys := make([]string, 0, len(additions))
	for k := range additions {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var buf bytes.Buffer
	buf.Write(existing)
	if len(existing) > 0 && !bytes.HasSuffix(existing, []byte("\n")) {
		buf.WriteByte('\n')
	}
	for _, k := range keys {
		writeEnvLine(&buf, k, additions[k])
	}
	return buf.Bytes(), keys, nil
}

// envEscaper escapes a value for a double-quoted .env line. Values are
// always quoted so "+1555..." keeps its sign and "0042" its zeros.
var envEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`, "\r", `\r`)
