// Command breaker encrypts its input under a random key and recovers it
// through one of the oracle attacks.
//
// Input is read as lines of base64 from the named files, or from
// standard input if there are none.
package main

import (
	"bufio"
	"encoding/base64"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/pmaddams/blockbreak/attack"
	"github.com/pmaddams/blockbreak/internal/random"
	"github.com/pmaddams/blockbreak/mac"
	"github.com/pmaddams/blockbreak/modes"
	"github.com/pmaddams/blockbreak/pkcs7"
	"github.com/pmaddams/blockbreak/rijndael"
	"github.com/pmaddams/blockbreak/xor"
)

var (
	a = flag.String("attack", "ecb", "attack: ecb, cbc, ctr-edit, ctr-fixed, xor, or mac")
	p = flag.Int("prefix", 0, "maximum length of the random prefix for ecb")
	h = flag.String("hash", "sha1", "hash for mac: md4, sha1, or sha256")
	n = flag.Int("n", 3, "number of key sizes to try for xor")
)

// errAttack is returned for an unknown attack name.
var errAttack = errors.New("breaker: unknown attack")

// breakFunc decrypts a set of lines and prints the results.
type breakFunc func(out io.Writer, lines [][]byte) error

func main() {
	flag.Parse()
	fn, err := breaker(*a, *p, *h, *n)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	files := flag.Args()
	if len(files) == 0 {
		if err := run(os.Stdin, os.Stdout, fn); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
		return
	}
	for _, file := range files {
		f, err := os.Open(file)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			continue
		}
		if err := run(f, os.Stdout, fn); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
		f.Close()
	}
}

// breaker returns the break function for an attack name.
func breaker(name string, prefix int, hashName string, keySizes int) (breakFunc, error) {
	switch name {
	case "ecb":
		if prefix < 0 {
			return nil, errors.New("breaker: negative prefix length")
		}
		return breakECB(prefix), nil
	case "cbc":
		return breakCBC, nil
	case "ctr-edit":
		return breakCTREdit, nil
	case "ctr-fixed":
		return breakFixedNonceCTR, nil
	case "xor":
		if keySizes < 1 {
			return nil, errors.New("breaker: key size count must be positive")
		}
		return breakXOR(keySizes), nil
	case "mac":
		fn, err := mac.ByName(hashName)
		if err != nil {
			return nil, fmt.Errorf("breaker: %q: %w", hashName, err)
		}
		return printMAC(fn), nil
	}
	return nil, fmt.Errorf("%w %q", errAttack, name)
}

// run reads lines of base64-encoded text and passes them to a break function.
func run(in io.Reader, out io.Writer, fn breakFunc) error {
	lines, err := readLines(in)
	if err != nil {
		return err
	}
	return fn(out, lines)
}

// readLines decodes lines of base64-encoded text, skipping blank lines.
func readLines(in io.Reader) ([][]byte, error) {
	input := bufio.NewScanner(in)
	var res [][]byte
	for input.Scan() {
		if input.Text() == "" {
			continue
		}
		line, err := base64.StdEncoding.DecodeString(input.Text())
		if err != nil {
			return nil, err
		}
		res = append(res, line)
	}
	if err := input.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

// ecbOracle returns an oracle that appends a secret to its input,
// prepends a random prefix, and encrypts the result in ECB mode.
func ecbOracle(maxPrefix int, secret []byte) attack.EncryptionOracle {
	key := random.Key()
	c, err := rijndael.NewCipher(key[:])
	if err != nil {
		panic(err)
	}
	mode := modes.NewECBEncrypter(c)
	prefix := random.Bytes(random.Range(0, maxPrefix))
	return attack.EncryptFunc(func(buf []byte) []byte {
		var tmp []byte
		tmp = append(tmp, prefix...)
		tmp = append(tmp, buf...)
		tmp = append(tmp, secret...)
		tmp = pkcs7.Pad(tmp, mode.BlockSize())
		mode.CryptBlocks(tmp, tmp)
		return tmp
	})
}

func breakECB(maxPrefix int) breakFunc {
	return func(out io.Writer, lines [][]byte) error {
		for _, line := range lines {
			buf, err := attack.BreakECBSuffix(ecbOracle(maxPrefix, line))
			if err != nil {
				return err
			}
			fmt.Fprintln(out, string(buf))
		}
		return nil
	}
}

func breakCBC(out io.Writer, lines [][]byte) error {
	key := random.Key()
	o := attack.PaddingFunc(func(block, iv rijndael.Block) bool {
		return modes.ValidCBCPadding(block, iv, key, rijndael.DecryptBlock)
	})
	for _, line := range lines {
		iv := random.Block()
		enc, err := modes.CBCEncrypt(pkcs7.Pad(line, rijndael.BlockSize), key, iv, rijndael.EncryptBlock)
		if err != nil {
			return err
		}
		dec, err := attack.BreakCBCPaddingOracle(enc, iv, o)
		if err != nil {
			return err
		}
		if dec, err = pkcs7.Unpad(dec); err != nil {
			return err
		}
		fmt.Fprintln(out, string(dec))
	}
	return nil
}

func breakCTREdit(out io.Writer, lines [][]byte) error {
	key, nonce := random.Key(), random.Uint64()
	o := attack.EditFunc(func(buf []byte, plaintext rijndael.Block, index int) {
		modes.EditCTR(buf, plaintext, index, key, nonce, rijndael.EncryptBlock)
	})
	for _, line := range lines {
		enc := modes.CTR(line, key, nonce, rijndael.EncryptBlock)
		fmt.Fprintln(out, string(attack.BreakCTREdit(enc, o)))
	}
	return nil
}

func breakFixedNonceCTR(out io.Writer, lines [][]byte) error {
	key, nonce := random.Key(), random.Uint64()
	var bufs [][]byte
	for _, line := range lines {
		bufs = append(bufs, modes.CTR(line, key, nonce, rijndael.EncryptBlock))
	}
	plaintexts, _ := attack.BreakFixedNonceCTR(bufs)
	for _, buf := range plaintexts {
		fmt.Fprintln(out, string(buf))
	}
	return nil
}

// breakXOR treats the input as a single repeating-key XOR ciphertext.
func breakXOR(keySizes int) breakFunc {
	return func(out io.Writer, lines [][]byte) error {
		var buf []byte
		for _, line := range lines {
			buf = append(buf, line...)
		}
		key, err := xor.BreakRepeating(buf, keySizes)
		if err != nil {
			return err
		}
		xor.Repeating(buf, buf, key)
		fmt.Fprintf(out, "key: %q\n\n%s\n", key, buf)
		return nil
	}
}

// printMAC prints the secret-prefix MAC and HMAC of each line under a random key,
// followed by whether the HMAC verifies.
func printMAC(fn mac.HashFunc) breakFunc {
	return func(out io.Writer, lines [][]byte) error {
		key := random.Bytes(random.Range(8, 64))
		m := mac.NewPrefix(fn, key)
		for _, line := range lines {
			m.Reset()
			m.Write(line)
			sum := mac.HMAC(fn, key, line)
			fmt.Fprintf(out, "%x %x %v\n", m.Sum(nil), sum, mac.Verify(fn, key, line, sum))
		}
		return nil
	}
}
