// Package loader provides the plugin-like feature loading system.
//
// Each feature implements Feature and registers its routes in Load. The
// Manager keeps the registry and loads the enabled features in registration
// order.
//
//	mgr := loader.NewManager()
//	mgr.Register(orders.NewFeature(svc, log))
//	if err := mgr.LoadAll(app); err != nil {
//	    return err
//	}
package loader
