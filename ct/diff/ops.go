package diff

import (
	"fmt"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	. "github.com/Zeegaths/keth/ct/common"
	"github.com/Zeegaths/keth/ct/ref"
	"github.com/Zeegaths/keth/ct/st"
)

// Args carries the arguments of one operation. Operations ignore the fields
// they do not take.
type Args struct {
	Address Address
	Key     Bytes32
	Value   U256
	Account *st.Account
}

// Result carries the outcome of one operation. Operations leave the fields
// they do not produce at their zero value.
type Result struct {
	Account *st.Account
	Value   U256
	Flag    bool
}

func (r Result) Eq(other Result) bool {
	return r.Account.Eq(other.Account) && r.Value.Eq(other.Value) && r.Flag == other.Flag
}

func (r Result) String() string {
	return fmt.Sprintf("{account: %v, value: %s, flag: %t}", r.Account, formatValue(r.Value), r.Flag)
}

// formatValue renders a word for diagnostics, decimal when it fits a native
// integer and full hex otherwise.
func formatValue(value U256) string {
	if value.IsUint64() {
		return value.DecimalString()
	}
	return value.String()
}

// stateOps maps operation names to their reference semantics on the
// persistent state.
var stateOps = map[string]func(*st.State, Args) (Result, error){
	"get_account": func(state *st.State, args Args) (Result, error) {
		return Result{Account: ref.GetAccount(state, args.Address)}, nil
	},
	"get_account_optional": func(state *st.State, args Args) (Result, error) {
		return Result{Account: ref.GetAccountOptional(state, args.Address)}, nil
	},
	"set_account": func(state *st.State, args Args) (Result, error) {
		ref.SetAccount(state, args.Address, args.Account)
		return Result{}, nil
	},
	"destroy_account": func(state *st.State, args Args) (Result, error) {
		ref.DestroyAccount(state, args.Address)
		return Result{}, nil
	},
	"destroy_storage": func(state *st.State, args Args) (Result, error) {
		ref.DestroyStorage(state, args.Address)
		return Result{}, nil
	},
	"mark_account_created": func(state *st.State, args Args) (Result, error) {
		ref.MarkAccountCreated(state, args.Address)
		return Result{}, nil
	},
	"account_exists": func(state *st.State, args Args) (Result, error) {
		return Result{Flag: ref.AccountExists(state, args.Address)}, nil
	},
	"account_has_code_or_nonce": func(state *st.State, args Args) (Result, error) {
		return Result{Flag: ref.AccountHasCodeOrNonce(state, args.Address)}, nil
	},
	"is_account_empty": func(state *st.State, args Args) (Result, error) {
		return Result{Flag: ref.IsAccountEmpty(state, args.Address)}, nil
	},
	"account_exists_and_is_empty": func(state *st.State, args Args) (Result, error) {
		return Result{Flag: ref.AccountExistsAndIsEmpty(state, args.Address)}, nil
	},
	"is_account_alive": func(state *st.State, args Args) (Result, error) {
		return Result{Flag: ref.IsAccountAlive(state, args.Address)}, nil
	},
	"get_storage": func(state *st.State, args Args) (Result, error) {
		return Result{Value: ref.GetStorage(state, args.Address, args.Key)}, nil
	},
	"get_storage_original": func(state *st.State, args Args) (Result, error) {
		return Result{Value: ref.GetStorageOriginal(state, args.Address, args.Key)}, nil
	},
	"set_storage": func(state *st.State, args Args) (Result, error) {
		return Result{}, ref.SetStorage(state, args.Address, args.Key, args.Value)
	},
	"begin_transaction": func(state *st.State, args Args) (Result, error) {
		ref.BeginTransaction(state)
		return Result{}, nil
	},
	"commit_transaction": func(state *st.State, args Args) (Result, error) {
		return Result{}, ref.CommitTransaction(state)
	},
	"rollback_transaction": func(state *st.State, args Args) (Result, error) {
		return Result{}, ref.RollbackTransaction(state)
	},
}

// transientOps maps operation names to their reference semantics on the
// transient storage.
var transientOps = map[string]func(*st.TransientStorage, Args) (Result, error){
	"get_transient_storage": func(transient *st.TransientStorage, args Args) (Result, error) {
		return Result{Value: ref.GetTransientStorage(transient, args.Address, args.Key)}, nil
	},
	"set_transient_storage": func(transient *st.TransientStorage, args Args) (Result, error) {
		ref.SetTransientStorage(transient, args.Address, args.Key, args.Value)
		return Result{}, nil
	},
	"begin_transient_transaction": func(transient *st.TransientStorage, args Args) (Result, error) {
		ref.BeginTransientTransaction(transient)
		return Result{}, nil
	},
	"commit_transient_transaction": func(transient *st.TransientStorage, args Args) (Result, error) {
		return Result{}, ref.CommitTransientTransaction(transient)
	},
	"rollback_transient_transaction": func(transient *st.TransientStorage, args Args) (Result, error) {
		return Result{}, ref.RollbackTransientTransaction(transient)
	},
}

// StateOps lists the persistent-state operation names in a stable order.
func StateOps() []string {
	names := maps.Keys(stateOps)
	slices.Sort(names)
	return names
}

// TransientOps lists the transient-storage operation names in a stable
// order.
func TransientOps() []string {
	names := maps.Keys(transientOps)
	slices.Sort(names)
	return names
}
