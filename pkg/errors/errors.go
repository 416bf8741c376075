// Package errors はプロジェクト全体のエラーハンドリングと警告システムを提供します。
// scikit-learnの警告・例外システムにインスパイアされており、構造化されたエラー情報を提供します。
package errors

import (
	"fmt"
	"log"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// ===========================================================================
//
//	グローバル警告ハンドリング
//
// ===========================================================================
var (
	warningMutex   sync.Mutex
	warningHandler = func(w error) {
		// デフォルトのハンドラは標準エラー出力にログを出す
		log.Printf("mofsieve-Warning: %v\n", w)
	}
	// zerologロガー（循環importを避けるため遅延初期化）
	zerologWarnFunc func(warning error)
)

// SetWarningHandler はライブラリ全体の警告ハンドラを設定します。
// DegenerateColumnWarningなどの非致命的な警告の処理方法を制御できます。
//
// 例:
//
//	errors.SetWarningHandler(func(w error) {
//	    // 警告を無視する
//	})
func SetWarningHandler(handler func(w error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	warningHandler = handler
}

// SetZerologWarnFunc はzerolog警告関数を設定します（循環importを避けるため）。
func SetZerologWarnFunc(warnFunc func(warning error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	zerologWarnFunc = warnFunc
}

// Warn は警告を発生させます。
// zerologが利用可能な場合は構造化ログとして出力し、そうでなければ従来のハンドラを使用します。
func Warn(w error) {
	warningMutex.Lock()
	defer warningMutex.Unlock()

	// zerologが設定されている場合は優先的に使用
	if zerologWarnFunc != nil {
		zerologWarnFunc(w)
		return
	}

	// フォールバック: 従来のハンドラ
	if warningHandler != nil {
		warningHandler(w)
	}
}

// ===========================================================================
//
//	パイプライン固有の警告型
//
// ===========================================================================

// DegenerateColumnWarning は特徴量カラムの分散がゼロ（min == max）の場合に発生する警告です。
// 正規化は定義されたフォールバック（全値を0に写像）を適用し、実行は継続されます。
type DegenerateColumnWarning struct {
	Column   string
	Value    float64 // カラム全体で共有される定数値
	Fallback float64 // 正規化後に全レコードへ割り当てられる値
}

func (w *DegenerateColumnWarning) Error() string {
	return fmt.Sprintf("feature column %q has zero variance (constant value %g); all scaled values set to %g",
		w.Column, w.Value, w.Fallback)
}

// MarshalZerologObject はzerologのイベントに構造化された警告情報を追加します。
func (w *DegenerateColumnWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("column", w.Column).
		Float64("value", w.Value).
		Float64("fallback", w.Fallback).
		Str("type", "DegenerateColumnWarning")
}

// NewDegenerateColumnWarning は新しいDegenerateColumnWarningを作成します。
func NewDegenerateColumnWarning(column string, value, fallback float64) *DegenerateColumnWarning {
	return &DegenerateColumnWarning{Column: column, Value: value, Fallback: fallback}
}

// SingularMatrixWarning は計画行列がランク落ちしており、正規方程式を直接解けない場合の警告です。
// 擬似逆行列による解法へフォールバックするため、実行は継続されます。
type SingularMatrixWarning struct {
	Op      string
	Rank    int
	Columns int
}

func (w *SingularMatrixWarning) Error() string {
	return fmt.Sprintf("%s: design matrix is rank-deficient (rank %d of %d columns); falling back to pseudo-inverse solver",
		w.Op, w.Rank, w.Columns)
}

// MarshalZerologObject はzerologのイベントに構造化された警告情報を追加します。
func (w *SingularMatrixWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("operation", w.Op).
		Int("rank", w.Rank).
		Int("columns", w.Columns).
		Str("type", "SingularMatrixWarning")
}

// NewSingularMatrixWarning は新しいSingularMatrixWarningを作成します。
func NewSingularMatrixWarning(op string, rank, columns int) *SingularMatrixWarning {
	return &SingularMatrixWarning{Op: op, Rank: rank, Columns: columns}
}

// ===========================================================================
//
//	構造化されたエラー型
//
// ===========================================================================

// MissingColumnError は入力データに必須カラムが存在しない場合の致命的エラーです。
type MissingColumnError struct {
	Column string
	Path   string
}

func (e *MissingColumnError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("mofsieve: required column %q not found in %s", e.Column, e.Path)
	}
	return fmt.Sprintf("mofsieve: required column %q not found in input", e.Column)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *MissingColumnError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("column", e.Column).
		Str("path", e.Path).
		Str("type", "MissingColumnError")
}

// NewMissingColumnError は新しいMissingColumnErrorを作成し、スタックトレースを付与します。
func NewMissingColumnError(column, path string) error {
	err := &MissingColumnError{Column: column, Path: path}
	return errors.WithStack(err)
}

// NotFittedError はモデルが未学習の状態で `Predict` や `Transform` を呼び出した場合のエラーです。
type NotFittedError struct {
	ModelName string
	Method    string
}

func (e *NotFittedError) Error() string {
	return fmt.Sprintf("mofsieve: %s: this model is not fitted yet. Call Fit() before using %s()", e.ModelName, e.Method)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *NotFittedError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("model_name", e.ModelName).
		Str("method", e.Method).
		Str("type", "NotFittedError")
}

// NewNotFittedError は新しいNotFittedErrorを作成し、スタックトレースを付与します。
func NewNotFittedError(modelName, method string) error {
	err := &NotFittedError{ModelName: modelName, Method: method}
	return errors.WithStack(err)
}

// DimensionError は入力データの次元が期待値と異なる場合のエラーです。
type DimensionError struct {
	Op       string
	Expected int
	Got      int
	Axis     int // 0 for rows, 1 for columns/features
}

func (e *DimensionError) Error() string {
	axisName := "features"
	if e.Axis == 0 {
		axisName = "rows"
	}
	return fmt.Sprintf("mofsieve: %s: dimension mismatch on axis %d (%s). Expected %d, got %d", e.Op, e.Axis, axisName, e.Expected, e.Got)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *DimensionError) MarshalZerologObject(event *zerolog.Event) {
	axisName := "features"
	if e.Axis == 0 {
		axisName = "rows"
	}
	event.Str("operation", e.Op).
		Int("expected", e.Expected).
		Int("got", e.Got).
		Int("axis", e.Axis).
		Str("axis_name", axisName).
		Str("type", "DimensionError")
}

// NewDimensionError は新しいDimensionErrorを作成し、スタックトレースを付与します。
func NewDimensionError(op string, expected, got, axis int) error {
	err := &DimensionError{Op: op, Expected: expected, Got: got, Axis: axis}
	return errors.WithStack(err)
}

// ValueError は引数の値が不適切または不正な場合に発生するエラーです。
type ValueError struct {
	Op      string
	Message string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("mofsieve: %s: %s", e.Op, e.Message)
}

// NewValueError は新しいValueErrorを作成し、スタックトレースを付与します。
func NewValueError(op, message string) error {
	err := &ValueError{Op: op, Message: message}
	return errors.WithStack(err)
}

// ModelError は回帰モデルに関する一般的なエラーです。
type ModelError struct {
	Op   string
	Kind string
	Err  error
}

func (e *ModelError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("mofsieve: %s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("mofsieve: %s: %s", e.Op, e.Kind)
}

func (e *ModelError) Unwrap() error {
	return e.Err
}

// NewModelError は新しいModelErrorを作成し、スタックトレースを付与します。
func NewModelError(op, kind string, err error) error {
	modelErr := &ModelError{Op: op, Kind: kind, Err: err}
	return errors.WithStack(modelErr)
}

// ===========================================================================
//
//	cockroachdb/errors ラッパー関数
//
// ===========================================================================

// Is はエラーが特定のターゲットエラーかどうかを判定します。
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As はエラーが特定の型にキャスト可能かどうかを判定します。
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap は既存のエラーをメッセージ付きでラップします。
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf は既存のエラーをフォーマット文字列でラップします。
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// New は新しいエラーを作成します。
func New(message string) error {
	return errors.New(message)
}

// Newf は新しいフォーマット済みエラーを作成します。
func Newf(format string, args ...interface{}) error {
	return errors.Newf(format, args...)
}

// WithStack はエラーにスタックトレースを付与します。
func WithStack(err error) error {
	return errors.WithStack(err)
}

// ===========================================================================
//
//	共通エラー変数
//
// ===========================================================================

var (
	// ErrEmptyData は空のデータが渡された場合のエラーです。
	ErrEmptyData = New("empty data")

	// ErrSingularMatrix は特異行列のため解を求められない場合のエラーです。
	ErrSingularMatrix = New("singular matrix")

	// ErrMissingValue は必須カラムに欠損値が残っている場合のエラーです。
	ErrMissingValue = New("missing value")
)
