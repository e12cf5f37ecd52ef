package marshal

import (
	"encoding"
	"io"
	"reflect"
	"strconv"

	"github.com/jfk9w-go/flu"
	httpf "github.com/jfk9w-go/flu/httpf"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"

	"tgram/types"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	JSONContentType = "application/json"
)

// Body is an encoded request body. It is encoded lazily while being sent.
// Bodies carrying streamed uploads can be sent only once.
type Body struct {
	encoder     flu.EncoderTo
	contentType string
	streams     []*types.FileReader
}

// JSONBody creates a body from an encoded JSON object.
func JSONBody(data []byte) *Body {
	return &Body{encoder: jsonBody(data), contentType: JSONContentType}
}

func (b *Body) EncodeTo(w io.Writer) error {
	return b.encoder.EncodeTo(w)
}

func (b *Body) ContentType() string {
	return b.contentType
}

// Streaming checks if the body reads uploads from one-shot readers.
func (b *Body) Streaming() bool {
	return len(b.streams) > 0
}

// Close closes the streamed upload readers.
func (b *Body) Close() error {
	var result error
	for _, stream := range b.streams {
		if err := closeReader(stream); err != nil && result == nil {
			result = err
		}
	}

	return result
}

type jsonBody []byte

func (b jsonBody) EncodeTo(w io.Writer) error {
	_, err := w.Write(b)
	return err
}

func (jsonBody) ContentType() string {
	return JSONContentType
}

type upload struct {
	field string
	file  types.InputFile
}

// Encode drops absent arguments and encodes the rest as a JSON object,
// or as multipart/form-data if any argument requires a file upload.
// Local paths must be resolved to readers before encoding.
func Encode(args Args) (*Body, error) {
	args = args.Compact()
	uploads := make([]upload, 0)
	for _, key := range args.Keys() {
		switch value := args[key].(type) {
		case types.InputFile:
			if types.IsUpload(value) {
				uploads = append(uploads, upload{key, value})
				delete(args, key)
			}

		case types.InputMedia:
			args[key] = attach(&uploads, key, value)

		case []types.InputMedia:
			media := make([]types.InputMedia, len(value))
			for i, item := range value {
				media[i] = attach(&uploads, key+strconv.Itoa(i), item)
			}

			args[key] = media
		}
	}

	if len(uploads) == 0 {
		data, err := json.Marshal(args)
		if err != nil {
			return nil, errors.Wrap(err, "encode json")
		}

		return JSONBody(data), nil
	}

	return encodeMultipart(args, uploads)
}

func attach(uploads *[]upload, name string, media types.InputMedia) types.InputMedia {
	if media == nil || !types.IsUpload(media.Media()) {
		return media
	}

	*uploads = append(*uploads, upload{name, media.Media()})
	return media.WithMedia(types.FileAttach(name))
}

func encodeMultipart(args Args, uploads []upload) (*Body, error) {
	form := new(httpf.Form)
	for _, key := range args.Keys() {
		value, err := formValue(args[key])
		if err != nil {
			return nil, errors.Wrapf(err, "encode %s", key)
		}

		form.Set(key, value)
	}

	body := new(Body)
	multipart := form.Multipart()
	for _, upload := range uploads {
		switch file := upload.file.(type) {
		case types.FileBytes:
			multipart = multipart.File(upload.field, file.Name, flu.Bytes(file.Data))
		case *types.FileReader:
			multipart = multipart.File(upload.field, file.Name, flu.IO{R: file.Reader})
			body.streams = append(body.streams, file)
		case types.FilePath:
			return nil, errors.Errorf("upload %s: local file %s is not resolved", upload.field, string(file))
		default:
			return nil, errors.Errorf("upload %s: unsupported upload %T", upload.field, file)
		}
	}

	body.encoder = multipart
	body.contentType = multipart.ContentType()
	return body, nil
}

// HasStream checks if any argument uploads a one-shot reader.
func HasStream(args Args) bool {
	found := false
	eachUpload(args, func(file types.InputFile) {
		if _, ok := file.(*types.FileReader); ok {
			found = true
		}
	})

	return found
}

func eachUpload(args Args, fun func(types.InputFile)) {
	for _, value := range args {
		switch value := value.(type) {
		case types.InputFile:
			fun(value)
		case types.InputMedia:
			if value != nil {
				fun(value.Media())
			}
		case []types.InputMedia:
			for _, item := range value {
				if item != nil {
					fun(item.Media())
				}
			}
		}
	}
}

// closeStreams closes every upload reader in args.
func closeStreams(args Args) {
	eachUpload(args, func(file types.InputFile) {
		if reader, ok := file.(*types.FileReader); ok {
			_ = closeReader(reader)
		}
	})
}

// closeOpened closes upload readers present in resolved but not in args.
func closeOpened(args, resolved Args) {
	given := make(map[*types.FileReader]bool)
	eachUpload(args, func(file types.InputFile) {
		if reader, ok := file.(*types.FileReader); ok {
			given[reader] = true
		}
	})

	eachUpload(resolved, func(file types.InputFile) {
		if reader, ok := file.(*types.FileReader); ok && !given[reader] {
			_ = closeReader(reader)
		}
	})
}

func closeReader(file *types.FileReader) error {
	if closer, ok := file.Reader.(io.Closer); ok {
		return closer.Close()
	}

	return nil
}

func formValue(value interface{}) (string, error) {
	if marshaler, ok := value.(encoding.TextMarshaler); ok {
		text, err := marshaler.MarshalText()
		return string(text), err
	}

	v := reflect.ValueOf(value)
	if v.Kind() == reflect.Ptr && !v.IsNil() && v.Elem().Kind() != reflect.Struct {
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.String:
		return v.String(), nil
	case reflect.Bool:
		return strconv.FormatBool(v.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(v.Uint(), 10), nil
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'f', -1, 64), nil
	default:
		data, err := json.Marshal(value)
		return string(data), err
	}
}
