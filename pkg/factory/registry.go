package factory

import (
	"context"
	"fmt"
	"sync"

	"github.com/xraph/foundry/pkg/common"
)

// defaultFactoryKey is the private key the default, unnamed Factory is
// registered under, mirroring the original's single well-known default
// instance.
const defaultFactoryKey = "__DEFAULT__"

var factoryRegistry sync.Map // key string -> *Factory

// Register inserts f under key if absent and returns the Factory now
// stored under key: f itself on a fresh registration, or the Factory
// already stored under key otherwise. This is safe, idempotent
// registration: it never overwrites an existing entry.
func Register(key string, f *Factory) *Factory {
	actual, _ := factoryRegistry.LoadOrStore(key, f)
	return actual.(*Factory)
}

// GetFactory looks up a previously registered Factory by key.
func GetFactory(key string) (*Factory, bool) {
	v, ok := factoryRegistry.Load(key)
	if !ok {
		return nil, false
	}
	return v.(*Factory), true
}

// Unregister removes key from the process-global Factory registry. This
// only affects registry lookup; it does not close or otherwise affect the
// Factory itself (built components are never dynamically unregistered,
// per the spec's Non-goals).
func Unregister(key string) {
	factoryRegistry.Delete(key)
}

// ResetGlobalRegistryForTest clears the process-global Factory registry.
func ResetGlobalRegistryForTest() {
	factoryRegistry = sync.Map{}
}

// NewInstance builds a Factory with b and registers it as the process's
// default instance, mirroring the convenience default-Factory pair from
// the original design. If a default instance is already registered, it is
// kept and returned instead of the newly built Factory.
func NewInstance(ctx context.Context, b *Builder) (*Factory, error) {
	f, err := b.Build(ctx)
	if err != nil {
		return nil, err
	}
	return Register(defaultFactoryKey, f), nil
}

// DefaultInstance returns the process's default Factory, if one has been
// built via NewInstance.
func DefaultInstance() (*Factory, bool) {
	return GetFactory(defaultFactoryKey)
}

// RuleSourceFunc instantiates a bucket of Rules for a single registered
// rule source.
type RuleSourceFunc func() ([]Rule, error)

var ruleSources sync.Map // name string -> RuleSourceFunc

// RegisterRuleSource registers a named rule source, meant to be called
// from an init() function the way database/sql drivers register
// themselves, since Go has no classpath to scan at startup. Registering
// the same name twice panics, matching the original's "only one rule
// source in a bucket" expectation.
func RegisterRuleSource(name string, src RuleSourceFunc) {
	if _, loaded := ruleSources.LoadOrStore(name, src); loaded {
		panic(fmt.Sprintf("factory: rule source %q already registered", name))
	}
}

// ResetRuleSourcesForTest clears the process-global rule source registry.
func ResetRuleSourcesForTest() {
	ruleSources = sync.Map{}
}

// DiscoverRuleSources invokes every registered rule source, returning a
// bucket of rules per successfully instantiated source and a list of
// Rule-discovery-failure errors for any source whose constructor panicked
// or returned an error.
func DiscoverRuleSources() (map[string][]Rule, []error) {
	buckets := make(map[string][]Rule)
	var failures []error
	ruleSources.Range(func(k, v interface{}) bool {
		name := k.(string)
		src := v.(RuleSourceFunc)
		rules, err := safeInvoke(src)
		if err != nil {
			failures = append(failures, common.ErrRuleDiscoveryFailure(name, err))
			return true
		}
		buckets[name] = rules
		return true
	})
	return buckets, failures
}

func safeInvoke(src RuleSourceFunc) (rules []Rule, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return src()
}
