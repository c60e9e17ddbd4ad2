package main

import (
	"math/big"
	"os"

	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"

	"github.com/coinbase/cb-rsa-go/pkg/cbrsa"
)

type keyFile struct {
	Public  publicSection   `toml:"public"`
	Private *privateSection `toml:"private,omitempty"`
}

type publicSection struct {
	E string `toml:"e"`
	N string `toml:"n"`
}

type privateSection struct {
	D string `toml:"d"`
	N string `toml:"n"`
}

func newKeyFile(pub *cbrsa.PublicKey, priv *cbrsa.PrivateKey) keyFile {
	kf := keyFile{Public: publicSection{E: pub.E().String(), N: pub.N().String()}}
	if priv != nil {
		kf.Private = &privateSection{D: priv.D().String(), N: priv.N().String()}
	}
	return kf
}

func marshalKeyFile(kf keyFile) ([]byte, error) {
	b, err := toml.Marshal(kf)
	return b, errors.Wrap(err, "encode key file")
}

func writeKeyFile(file string, kf keyFile) error {
	b, err := marshalKeyFile(kf)
	if err != nil {
		return err
	}
	defer cbrsa.ZeroizeBytes(b)
	return errors.Wrapf(os.WriteFile(file, b, 0600), "write key file %s", file)
}

func readKeyFile(file string) (keyFile, error) {
	b, err := os.ReadFile(file)
	if err != nil {
		return keyFile{}, errors.Wrap(err, "read key file")
	}
	defer cbrsa.ZeroizeBytes(b)

	var kf keyFile
	if err := toml.Unmarshal(b, &kf); err != nil {
		return keyFile{}, errors.Wrapf(err, "parse key file %s", file)
	}
	return kf, nil
}

func loadPublicKey(file string) (*cbrsa.PublicKey, error) {
	kf, err := readKeyFile(file)
	if err != nil {
		return nil, err
	}
	e, err := parseDecimal("public.e", kf.Public.E)
	if err != nil {
		return nil, err
	}
	n, err := parseDecimal("public.n", kf.Public.N)
	if err != nil {
		return nil, err
	}
	pub, err := cbrsa.NewPublicKey(e, n)
	return pub, errors.Wrapf(err, "key file %s", file)
}

func loadPrivateKey(file string) (*cbrsa.PrivateKey, error) {
	kf, err := readKeyFile(file)
	if err != nil {
		return nil, err
	}
	if kf.Private == nil {
		return nil, errors.Errorf("key file %s has no [private] section", file)
	}
	d, err := parseDecimal("private.d", kf.Private.D)
	if err != nil {
		return nil, err
	}
	defer cbrsa.ZeroizeInt(d)
	n, err := parseDecimal("private.n", kf.Private.N)
	if err != nil {
		return nil, err
	}
	priv, err := cbrsa.NewPrivateKey(d, n)
	return priv, errors.Wrapf(err, "key file %s", file)
}

func parseDecimal(field, s string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, errors.Errorf("%s is not a decimal integer", field)
	}
	return v, nil
}
