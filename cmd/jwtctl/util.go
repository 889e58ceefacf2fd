package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"

	"github.com/kataras/jwtengine"
	"github.com/kataras/jwtengine/bridge"
	"github.com/kataras/jwtengine/internal/logging"
	"github.com/kataras/jwtengine/internal/logging/logfields"
)

var errNoKey = fmt.Errorf("%w: no key given, use --secret or --key-file", jwt.ErrInvalidKey)

type keyFlags struct {
	secret  string
	keyFile string
}

func (k *keyFlags) add(command *cobra.Command) {
	command.Flags().StringVarP(&k.secret, "secret", "s", "", fmt.Sprintf("HMAC secret, raw or path to a file holding it (env %s)", EnvSecret))
	command.Flags().StringVarP(&k.keyFile, "key-file", "k", "", fmt.Sprintf("PEM encoded RSA or ECDSA key file (env %s)", EnvKeyFile))
}

func (k keyFlags) signingKey() (jwt.PrivateKey, error) {
	if path := flagOrEnv(k.keyFile, EnvKeyFile); path != "" {
		return jwt.LoadPrivateKey(path)
	}

	return k.hmacKey()
}

// verificationKey accepts a public key, a certificate or a private key file.
func (k keyFlags) verificationKey() (jwt.PublicKey, error) {
	if path := flagOrEnv(k.keyFile, EnvKeyFile); path != "" {
		key, err := jwt.LoadPublicKey(path)
		if err == nil || !errors.Is(err, jwt.ErrInvalidKey) {
			return key, err
		}
		return jwt.LoadPrivateKey(path)
	}

	return k.hmacKey()
}

func (k keyFlags) hmacKey() ([]byte, error) {
	secret := flagOrEnv(k.secret, EnvSecret)
	if secret == "" {
		return nil, errNoKey
	}

	return jwt.LoadHMAC(secret)
}

// readToken returns the token argument, or reads it from "in" when the
// argument is missing or "-".
func readToken(args []string, in io.Reader) (string, error) {
	if len(args) > 0 && args[0] != "-" {
		return strings.TrimSpace(args[0]), nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}

	token := strings.TrimSpace(line)
	if token == "" {
		return "", errors.New("no token given")
	}
	return token, nil
}

// marshalOutput marshals any tagged struct in the output format given.
// Formats supported are json, yaml and text. Only fields with a "text"
// tag are written in text format.
func marshalOutput(s any, outputFormat string) ([]byte, error) {
	var out []byte
	var err error
	switch strings.ToLower(outputFormat) {
	case "json":
		out, err = json.MarshalIndent(s, "", "  ")
		out = append(out, '\n')
	case "yaml":
		out, err = yaml.Marshal(s)
	case "text":
		bb := &bytes.Buffer{}
		tw := tabwriter.NewWriter(bb, 0, 0, 2, ' ', 0)
		err = structToTabwriter(s, tw)
		tw.Flush()
		out = bb.Bytes()
	default:
		err = fmt.Errorf("unknown output format: %s", outputFormat)
	}
	return out, err
}

func structToTabwriter(s any, tw *tabwriter.Writer) error {
	t := reflect.TypeOf(s)
	v := reflect.ValueOf(s)
	if t.Kind() == reflect.Pointer {
		t = v.Elem().Type()
		v = v.Elem()
	}
	if t.Kind() != reflect.Struct {
		return fmt.Errorf("expected struct, got %s", t.Kind())
	}
	for i := 0; i < t.NumField(); i++ {
		if !t.Field(i).IsExported() {
			continue
		}
		name, _, _ := strings.Cut(t.Field(i).Tag.Get("text"), ",")
		if name == "" {
			continue
		}
		fmt.Fprintf(tw, "%s:\t%s\n", name, textValue(v.Field(i)))
	}
	return nil
}

func textValue(v reflect.Value) string {
	switch v.Kind() {
	case reflect.Pointer:
		if v.IsNil() {
			return "null"
		}
		return textValue(v.Elem())
	case reflect.Map, reflect.Slice:
		if v.IsNil() || v.Len() == 0 {
			return "null"
		}
		b, err := json.Marshal(v.Interface())
		if err != nil {
			return fmt.Sprint(v.Interface())
		}
		return string(b)
	default:
		return fmt.Sprint(v.Interface())
	}
}

func writeOutput(cmd *cobra.Command, v any, format string) error {
	out, err := marshalOutput(v, format)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}

// newService returns a bridge service logging on behalf of the command.
func newService(cmd *cobra.Command, opts ...bridge.Option) (*bridge.Service, error) {
	log := logging.ModuleLogger("jwtctl").WithField(logfields.Method, cmd.Name())
	return bridge.NewService(append([]bridge.Option{bridge.WithLogger(log)}, opts...)...)
}
